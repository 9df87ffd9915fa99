package engine

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"go.vocdoni.io/dvote/db/metadb"
	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/ballotproof"
	"github.com/Lauren6175/arcane-vote/crypto/ecc"
	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
	"github.com/Lauren6175/arcane-vote/crypto/homomorphic"
	"github.com/Lauren6175/arcane-vote/storage"
	"github.com/Lauren6175/arcane-vote/types"
)

func init() {
	log.Init("debug", "stdout", nil)
}

var (
	creator = common.HexToAddress("0x1000000000000000000000000000000000000001")
	voterX  = common.HexToAddress("0x2000000000000000000000000000000000000002")
	voterY  = common.HexToAddress("0x3000000000000000000000000000000000000003")
	voterZ  = common.HexToAddress("0x4000000000000000000000000000000000000004")
	voterW  = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

func newTestEngine(t *testing.T) *Engine {
	return New(storage.New(metadb.NewTest(t)))
}

// pollKey fetches the poll's public key as a curve point through the public
// projection, the same way an external voter obtains it.
func pollKey(c *qt.C, e *Engine, id types.PollID) (ecc.Point, *PollInfo) {
	info, err := e.GetPoll(id)
	c.Assert(err, qt.IsNil)
	publicKey := curves.New(info.CurveType)
	c.Assert(publicKey.Unmarshal(info.PublicKey), qt.IsNil)
	return publicKey, info
}

func castVote(c *qt.C, e *Engine, id types.PollID, voter common.Address, choice uint64) error {
	publicKey, info := pollKey(c, e, id)
	curve := curves.New(info.CurveType)
	rawBallot, rawProof, err := ballotproof.EncryptChoice(curve, publicKey, &ballotproof.Context{
		PollID:     id,
		NumOptions: len(info.Options),
		Voter:      voter,
	}, choice)
	c.Assert(err, qt.IsNil)
	return e.SubmitVote(id, voter, rawBallot, rawProof)
}

// decryptCount opens one accumulator with the poll's private key, playing the
// role of the external decryption service.
func decryptCount(c *qt.C, e *Engine, id types.PollID, option int, caller common.Address) uint64 {
	data, err := e.ReadEncryptedTally(id, option, caller)
	c.Assert(err, qt.IsNil)

	info, err := e.GetPoll(id)
	c.Assert(err, qt.IsNil)
	curve := curves.New(info.CurveType)
	publicKey, privateKey, err := e.Storage().EncryptionKeys(id, info.CurveType)
	c.Assert(err, qt.IsNil)

	ct := elgamal.NewCiphertext(curve)
	c.Assert(ct.Deserialize(data), qt.IsNil)
	ev := homomorphic.NewEvaluator(curve, publicKey, privateKey, 1000)
	count, err := ev.Decrypt(ct, 1000)
	c.Assert(err, qt.IsNil)
	return count
}

func TestCreatePollValidation(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)

	cases := []struct {
		question string
		options  []string
		duration time.Duration
	}{
		{"", []string{"a", "b"}, time.Hour},
		{"q", []string{"a"}, time.Hour},
		{"q", []string{"a", " "}, time.Hour},
		{"q", []string{"a", "b"}, 0},
		{"q", []string{"a", "b"}, -time.Minute},
	}
	for _, tc := range cases {
		_, err := e.CreatePoll(creator, tc.question, tc.options, tc.duration)
		c.Assert(err, qt.ErrorIs, ErrInvalidPollParameters)
	}

	tooMany := make([]string, types.MaxPollOptions+1)
	for i := range tooMany {
		tooMany[i] = "option"
	}
	_, err := e.CreatePoll(creator, "q", tooMany, time.Hour)
	c.Assert(err, qt.ErrorIs, ErrInvalidPollParameters)

	id, err := e.CreatePoll(creator, "favorite letter", []string{"A", "B"}, time.Hour)
	c.Assert(err, qt.IsNil)
	info, err := e.GetPoll(id)
	c.Assert(err, qt.IsNil)
	c.Assert(info.Active, qt.IsTrue)
	c.Assert(info.Options, qt.DeepEquals, []string{"A", "B"})
	c.Assert(info.Creator, qt.Equals, creator)
	c.Assert(len(info.PublicKey) > 0, qt.IsTrue)
}

func TestGetPollNotFound(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)
	_, err := e.GetPoll(types.PollID(12345))
	c.Assert(err, qt.ErrorIs, ErrPollNotFound)
}

func TestVotingScenario(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)

	id, err := e.CreatePoll(creator, "favorite letter", []string{"A", "B"}, time.Hour)
	c.Assert(err, qt.IsNil)

	c.Assert(castVote(c, e, id, voterX, 0), qt.IsNil)
	c.Assert(castVote(c, e, id, voterY, 1), qt.IsNil)
	c.Assert(castVote(c, e, id, voterZ, 0), qt.IsNil)

	// W replays X's ballot: the proof is bound to X, so it fails and W's
	// receipt stays clear
	publicKey, info := pollKey(c, e, id)
	curve := curves.New(info.CurveType)
	rawBallot, rawProof, err := ballotproof.EncryptChoice(curve, publicKey, &ballotproof.Context{
		PollID:     id,
		NumOptions: len(info.Options),
		Voter:      voterX,
	}, 0)
	c.Assert(err, qt.IsNil)
	err = e.SubmitVote(id, voterW, rawBallot, rawProof)
	c.Assert(err, qt.ErrorIs, ErrInvalidProof)
	voted, err := e.Storage().HasVoted(id, voterW)
	c.Assert(err, qt.IsNil)
	c.Assert(voted, qt.IsFalse)

	// the failed attempt is free: W can still vote
	c.Assert(castVote(c, e, id, voterW, 1), qt.IsNil)

	c.Assert(decryptCount(c, e, id, 0, creator), qt.Equals, uint64(2))
	c.Assert(decryptCount(c, e, id, 1, creator), qt.Equals, uint64(2))
}

func TestDoubleVoteRejected(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)

	id, err := e.CreatePoll(creator, "q", []string{"A", "B"}, time.Hour)
	c.Assert(err, qt.IsNil)

	c.Assert(castVote(c, e, id, voterX, 0), qt.IsNil)
	err = castVote(c, e, id, voterX, 1)
	c.Assert(err, qt.ErrorIs, ErrAlreadyVoted)

	c.Assert(decryptCount(c, e, id, 0, creator), qt.Equals, uint64(1))
	c.Assert(decryptCount(c, e, id, 1, creator), qt.Equals, uint64(0))
}

func TestVoteOnClosedPoll(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)

	id, err := e.CreatePoll(creator, "q", []string{"A", "B"}, 10*time.Millisecond)
	c.Assert(err, qt.IsNil)
	time.Sleep(20 * time.Millisecond)

	err = castVote(c, e, id, voterX, 0)
	c.Assert(err, qt.ErrorIs, ErrPollClosed)

	closed, err := e.CloseExpired()
	c.Assert(err, qt.IsNil)
	c.Assert(closed, qt.Equals, 1)
	info, err := e.GetPoll(id)
	c.Assert(err, qt.IsNil)
	c.Assert(info.Active, qt.IsFalse)

	// a second sweep finds nothing to close
	closed, err = e.CloseExpired()
	c.Assert(err, qt.IsNil)
	c.Assert(closed, qt.Equals, 0)
}

func TestVoteOnUnknownPoll(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)
	err := e.SubmitVote(types.PollID(42), voterX, []byte{0x01}, []byte{0x02})
	c.Assert(err, qt.ErrorIs, ErrPollNotFound)
}

func TestAccessGate(t *testing.T) {
	c := qt.New(t)
	e := newTestEngine(t)

	id, err := e.CreatePoll(creator, "q", []string{"A", "B"}, time.Hour)
	c.Assert(err, qt.IsNil)
	c.Assert(castVote(c, e, id, voterX, 0), qt.IsNil)

	// creator reads without a grant
	_, err = e.ReadEncryptedTally(id, 0, creator)
	c.Assert(err, qt.IsNil)

	// outsider cannot read
	_, err = e.ReadEncryptedTally(id, 0, voterY)
	c.Assert(err, qt.ErrorIs, ErrNotAuthorized)

	// only the creator can grant
	err = e.GrantDecryptAccess(id, 0, voterY, voterZ)
	c.Assert(err, qt.ErrorIs, ErrNotAuthorized)
	err = e.GrantDecryptAccess(id, 5, voterY, creator)
	c.Assert(err, qt.ErrorIs, ErrInvalidOption)

	c.Assert(e.GrantDecryptAccess(id, 0, voterY, creator), qt.IsNil)
	// idempotent re-grant
	c.Assert(e.GrantDecryptAccess(id, 0, voterY, creator), qt.IsNil)

	// the grant covers option 0 only
	_, err = e.ReadEncryptedTally(id, 0, voterY)
	c.Assert(err, qt.IsNil)
	_, err = e.ReadEncryptedTally(id, 1, voterY)
	c.Assert(err, qt.ErrorIs, ErrNotAuthorized)

	_, err = e.ReadEncryptedTally(id, 9, creator)
	c.Assert(err, qt.ErrorIs, ErrInvalidOption)

	// the returned accumulator is the stored one, byte for byte
	stored, err := e.Storage().Poll(id)
	c.Assert(err, qt.IsNil)
	read, err := e.ReadEncryptedTally(id, 0, voterY)
	c.Assert(err, qt.IsNil)
	c.Assert(read, qt.DeepEquals, stored.VoteCounts[0])
}
