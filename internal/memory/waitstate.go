package memory

import "fmt"

// WaitState holds the cycle cost of an access for each width.
type WaitState struct {
	Access8  int `json:"access8"`
	Access16 int `json:"access16"`
	Access32 int `json:"access32"`
}

// DefaultWaitState is a single cycle for every width.
var DefaultWaitState = WaitState{1, 1, 1}

func NewWaitState(access8, access16, access32 int) WaitState {
	return WaitState{
		Access8:  access8,
		Access16: access16,
		Access32: access32,
	}
}

func (ws WaitState) Cycles(width Width) int {
	switch width {
	case Width8:
		return ws.Access8
	case Width16:
		return ws.Access16
	case Width32:
		return ws.Access32
	}
	return 1
}

func (ws WaitState) Validate() error {
	if ws.Access8 <= 0 || ws.Access16 <= 0 || ws.Access32 <= 0 {
		return fmt.Errorf("wait states must be > 0, got %d/%d/%d", ws.Access8, ws.Access16, ws.Access32)
	}
	return nil
}
