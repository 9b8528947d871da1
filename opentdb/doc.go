// Package opentdb provides a client for the Open Trivia Database API.
//
// OpenTDB (https://opentdb.com) serves user contributed trivia questions.
// This package builds requests against its fixed endpoints, attaches an
// optional session token and decodes the base64 encoded responses into typed
// models.
//
// # Usage
//
//	client := opentdb.NewClient(opentdb.WithLogger(logger))
//
//	token, err := client.GenerateToken(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	client.SetToken(token)
//
//	req := client.Trivia()
//	if err := req.SetQuestionCount(20); err != nil {
//		log.Fatal(err)
//	}
//	req.SetCategory(opentdb.CategoryAnimals)
//	req.SetDifficulty(opentdb.DifficultyEasy)
//
//	resp, err := req.Send(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if resp.ResponseCode.IsTokenError() {
//		// token exhausted or unknown, reset it
//	}
//
// Category and global statistics do not use the token:
//
//	details, err := client.CategoryDetails(opentdb.CategoryHistory).Send(ctx)
//	global, err := client.GlobalDetails().Send(ctx)
//
// Other endpoints can be reached with NewRequest:
//
//	resp, err := opentdb.NewRequest[opentdb.TokenResponse](client, "/api_token.php?command=request").Send(ctx)
//
// # Concurrency
//
// A Client may be used from many goroutines. Each Request snapshots the
// token when it is created and must be configured on a single goroutine
// before Send. Clone returns a client sharing the connection pool with an
// independent token. For callers that do not want to pass contexts, see the
// blocking subpackage.
//
// # Error Handling
//
// Every error returned by Send matches one of:
//
//   - ErrTransport: the request produced no HTTP response (*TransportError)
//   - ErrUnsuccessful: a non-200 status below 500 (*APIError)
//   - ErrInternalServer: a 5xx status (*APIError)
//   - ErrInvalidOption: a caller supplied value was rejected before any I/O
//   - ErrDecode: the 200 body could not be decoded (*DecodeError)
//
// Response codes such as ResponseTokenEmpty arrive in successful responses
// and are left to the caller.
package opentdb
