package common

const (
	// RequestedWithHeader identifies requests coming from the mobile client.
	// The backend uses it to tell the app apart from the web frontend.
	RequestedWithHeader = "X-Requested-With"
	RequestedWithValue  = "il.gov.court.mobile"

	// AuthChallengeHeader carries the re-authentication kind on 401/419
	// responses ("passcode", "deviceid", or absent for plain login).
	AuthChallengeHeader = "WWW-Authenticate"

	// StatusAuthTimeout is the non-standard status the legacy backend uses
	// for an expired authentication session.
	StatusAuthTimeout = 419
)
