package response

// Envelope adalah body soft-outcome: selalu HTTP 200, hasil sebenarnya ada
// di field status (pending/verified/ok/success/error/sent).
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
