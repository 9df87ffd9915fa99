package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// PollsEndpoint is the endpoint for creating a new poll
	PollsEndpoint = "/polls"
	// PollEndpoint is the endpoint to get the poll info
	PollURLParam = "pollId"
	PollEndpoint = "/polls/{" + PollURLParam + "}"
	// VotesEndpoint is the endpoint for submitting an encrypted vote
	VotesEndpoint = "/polls/{" + PollURLParam + "}/votes"
	// GrantsEndpoint is the endpoint for granting tally read access
	GrantsEndpoint = "/polls/{" + PollURLParam + "}/grants"
	// TallyEndpoint is the endpoint to read one encrypted accumulator
	TallyURLParam = "option"
	TallyEndpoint = "/polls/{" + PollURLParam + "}/tally/{" + TallyURLParam + "}"
)
