// Package tasksdk holds the wire types of the tasks API together with a
// small Go client.
//
// The server and the client share the same request and response structs,
// so the JSON shapes documented here are the ones on the wire. Every
// successful response is wrapped as
//
//	{"data": ..., "message": "..."}
//
// and every failure as
//
//	{"error": "code", "message": "...", "details": {"field": "reason"}}
//
// Typical use:
//
//	c := tasksdk.NewClient("http://localhost:8080")
//	s, err := c.Login(ctx, "alice", "secret")
//	if err != nil {
//		var apiErr *tasksdk.APIError
//		if errors.As(err, &apiErr) && apiErr.Code == tasksdk.ErrorCodeInvalidCredentials {
//			// wrong username or password
//		}
//		return err
//	}
//	tasks, err := s.ListTasks(ctx, "")
//
// Access tokens last 60 minutes and there is no refresh flow; log in again
// once a call fails with ErrorCodeUnauthorized.
package tasksdk
