/*
Package vouchsdk is the Go client for the vouch credential service and the
home of its wire types.

# Client vs Session

Client covers the anonymous endpoints: signup, login, the organization
directory, public profiles, employer provisioning and health checks.
Logging in returns a Session, which carries the bearer token for the
endpoints that need one:

	client := vouchsdk.NewClient("https://vouch.example.com")

	accountID, err := client.Signup(ctx, vouchsdk.SignupRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Name:     "Alice",
		Handle:   "alice",
	})

	session, err := client.Login(ctx, "alice@example.com", "correct horse battery", "")

	req, err := session.SubmitRequest(ctx, vouchsdk.SubmitRequest{
		OrganizationName: "Acme",
		RoleTitle:        "Engineer",
		StartDate:        "2021-01-01",
	})

An employer session reviews the organization's queue:

	pending, err := employer.ListPendingRequests(ctx)
	approved, err := employer.ApproveRequest(ctx, pending[0].ID)

# Errors

Every non-2xx response becomes an *APIError. Compare with errors.Is against
the predefined values, which match on Code:

	if errors.Is(err, vouchsdk.ErrNotPending) {
		// someone else already decided this request
	}

The server uses the same values to write its responses, so the two sides
cannot drift apart.
*/
package vouchsdk
