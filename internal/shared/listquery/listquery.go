package listquery

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Params adalah rencana pagination offset-based yang deterministik.
type Params struct {
	Skip  int
	Limit int
}

// Normalize clamps skip/limit into the supported window (skip >= 0,
// 1 <= limit <= 1000, default 100).
func (p Params) Normalize() Params {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Page = skip // limit + 1 when limit > 0, else 1
func (p Params) Page() int {
	if p.Limit > 0 {
		return p.Skip/p.Limit + 1
	}
	return 1
}
