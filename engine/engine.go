// Package engine implements the confidential ballot engine: poll lifecycle,
// encrypted vote intake and the access gate over the encrypted tallies. All
// vote content handled here stays encrypted; the engine is restricted to the
// homomorphic Scheme primitives and never holds a decryption capability of
// its own.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/crypto/ecc/curves"
	"github.com/Lauren6175/arcane-vote/crypto/elgamal"
	"github.com/Lauren6175/arcane-vote/storage"
	"github.com/Lauren6175/arcane-vote/types"
)

// Engine wires the poll registry, the ballot intake and the access gate over
// a Storage instance. Operations on the same poll are serialized with a
// per-poll mutex so check-compute-write sequences are atomic.
type Engine struct {
	stg       *storage.Storage
	locksMu   sync.Mutex
	pollLocks map[types.PollID]*sync.Mutex
}

// New creates an Engine on top of the given storage.
func New(stg *storage.Storage) *Engine {
	return &Engine{
		stg:       stg,
		pollLocks: map[types.PollID]*sync.Mutex{},
	}
}

// Storage exposes the underlying storage, used by the services layer.
func (e *Engine) Storage() *storage.Storage {
	return e.stg
}

// pollLock returns the mutex serializing operations on one poll.
func (e *Engine) pollLock(id types.PollID) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()
	l, ok := e.pollLocks[id]
	if !ok {
		l = &sync.Mutex{}
		e.pollLocks[id] = l
	}
	return l
}

// PollInfo is the public projection of a poll: everything about it except the
// encrypted accumulators and key material.
type PollInfo struct {
	ID        types.PollID   `json:"pollId"`
	Creator   common.Address `json:"creator"`
	Question  string         `json:"question"`
	Options   []string       `json:"options"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Active    bool           `json:"active"`
	CurveType string         `json:"curveType"`
	PublicKey types.HexBytes `json:"publicKey"`
}

// CreatePoll validates the parameters, allocates a poll identifier, generates
// the poll's encryption key pair and initializes one encrypted-zero
// accumulator per option. It returns the new poll's identifier.
func (e *Engine) CreatePoll(creator common.Address, question string, options []string, duration time.Duration) (types.PollID, error) {
	if err := validatePollParams(question, options, duration); err != nil {
		return 0, err
	}

	id, err := e.stg.NextPollID()
	if err != nil {
		return 0, fmt.Errorf("could not allocate poll id: %w", err)
	}

	curve := curves.New(curves.CurveTypeDefault)
	publicKey, privateKey, err := elgamal.GenerateKey(curve)
	if err != nil {
		return 0, fmt.Errorf("could not generate poll keys: %w", err)
	}
	if err := e.stg.SetEncryptionKeys(id, publicKey, privateKey); err != nil {
		return 0, fmt.Errorf("could not store poll keys: %w", err)
	}

	tally, err := elgamal.NewTally(curve, publicKey, len(options))
	if err != nil {
		return 0, fmt.Errorf("could not initialize accumulators: %w", err)
	}
	counts := make([]types.HexBytes, len(options))
	for i, ct := range tally.Ciphertexts {
		counts[i] = ct.Serialize()
	}

	now := time.Now()
	poll := &storage.Poll{
		ID:         id,
		Creator:    creator,
		Question:   question,
		Options:    options,
		StartTime:  now,
		EndTime:    now.Add(duration),
		Active:     true,
		CurveType:  curve.Type(),
		VoteCounts: counts,
	}
	if err := e.stg.SetPoll(poll); err != nil {
		return 0, fmt.Errorf("could not store poll: %w", err)
	}
	log.Infow("poll created", "pollId", id.String(), "creator", creator.Hex(),
		"options", len(options), "endTime", poll.EndTime.String())
	return id, nil
}

// GetPoll returns the public projection of a poll.
func (e *Engine) GetPoll(id types.PollID) (*PollInfo, error) {
	poll, err := e.loadPoll(id)
	if err != nil {
		return nil, err
	}
	publicKey, _, err := e.stg.EncryptionKeys(id, poll.CurveType)
	if err != nil {
		return nil, fmt.Errorf("could not read poll keys: %w", err)
	}
	return &PollInfo{
		ID:        poll.ID,
		Creator:   poll.Creator,
		Question:  poll.Question,
		Options:   append([]string{}, poll.Options...),
		StartTime: poll.StartTime,
		EndTime:   poll.EndTime,
		Active:    poll.Active && time.Now().Before(poll.EndTime),
		CurveType: poll.CurveType,
		PublicKey: publicKey.Marshal(),
	}, nil
}

// CloseExpired deactivates every active poll whose end time has passed. It
// returns the number of polls closed. Closure is authoritative at call time
// in every operation regardless; this only keeps the stored flag in sync.
func (e *Engine) CloseExpired() (int, error) {
	ids, err := e.stg.ListPolls()
	if err != nil {
		return 0, err
	}
	closed := 0
	now := time.Now()
	for _, id := range ids {
		lock := e.pollLock(id)
		lock.Lock()
		poll, err := e.stg.Poll(id)
		if err != nil {
			lock.Unlock()
			return closed, err
		}
		if poll.Active && now.After(poll.EndTime) {
			poll.Active = false
			if err := e.stg.SetPoll(poll); err != nil {
				lock.Unlock()
				return closed, err
			}
			closed++
			log.Debugw("poll closed", "pollId", id.String())
		}
		lock.Unlock()
	}
	return closed, nil
}

// loadPoll fetches a poll, translating the storage miss into the engine's
// sentinel.
func (e *Engine) loadPoll(id types.PollID) (*storage.Poll, error) {
	poll, err := e.stg.Poll(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPollNotFound, id)
		}
		return nil, err
	}
	return poll, nil
}

func validatePollParams(question string, options []string, duration time.Duration) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("%w: empty question", ErrInvalidPollParameters)
	}
	if len(question) > types.MaxQuestionLen {
		return fmt.Errorf("%w: question too long", ErrInvalidPollParameters)
	}
	if len(options) < 2 {
		return fmt.Errorf("%w: at least two options required", ErrInvalidPollParameters)
	}
	if len(options) > types.MaxPollOptions {
		return fmt.Errorf("%w: too many options (max %d)", ErrInvalidPollParameters, types.MaxPollOptions)
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: empty label for option %d", ErrInvalidPollParameters, i)
		}
		if len(opt) > types.MaxOptionLabelLen {
			return fmt.Errorf("%w: label too long for option %d", ErrInvalidPollParameters, i)
		}
	}
	if duration <= 0 {
		return fmt.Errorf("%w: non-positive duration", ErrInvalidPollParameters)
	}
	return nil
}
