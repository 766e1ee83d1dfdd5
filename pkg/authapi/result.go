package authapi

import "encoding/json"

// Fixed messages and their catalog keys.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgNoResponse         = "Server did not respond. Check your connection."
	MsgConnectFailed      = "Error trying to connect to the server."
	MsgEmailInUse         = "This email is already in use."
	MsgRegisterFailed     = "Registration failed."

	KeyInvalidCredentials = "authapi.invalid_credentials"
	KeyNoResponse         = "authapi.no_response"
	KeyConnectFailed      = "authapi.connect_failed"
	KeyEmailInUse         = "authapi.email_in_use"
	KeyRegisterFailed     = "authapi.register_failed"
)

// Result is the uniform outcome of every backend call.
type Result struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	MessageKey string          `json:"-"`
}

// LoginData is the login payload. UserExists is the authenticated user
// record despite its name.
type LoginData struct {
	Token      string          `json:"token"`
	UserExists json.RawMessage `json:"userExists"`
}

// HasUser reports whether the payload carries a non-null user record.
func (d LoginData) HasUser() bool {
	switch string(d.UserExists) {
	case "", "null", "false":
		return false
	}
	return true
}

// LoginData decodes Data as a login payload.
func (r Result) LoginData() (LoginData, bool) {
	var d LoginData
	if len(r.Data) == 0 || json.Unmarshal(r.Data, &d) != nil {
		return LoginData{}, false
	}
	return d, true
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func failure(msg, key string) Result {
	return Result{Message: msg, MessageKey: key}
}
