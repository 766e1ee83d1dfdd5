package authsession

const (
	MsgLoginFailed        = "Invalid credentials. Try again."
	MsgLoginUnexpected    = "Login failed. Try again later."
	MsgRegisterFailed     = "Registration failed. Try again."
	MsgRegisterUnexpected = "Registration failed. Try again later."

	KeyLoginFailed        = "session.login_failed"
	KeyLoginUnexpected    = "session.login_unexpected"
	KeyRegisterFailed     = "session.register_failed"
	KeyRegisterUnexpected = "session.register_unexpected"
)
