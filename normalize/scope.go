// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"
	"strings"
)

// Scope names the reference set a Scaler is fit on.
type Scope uint8

const (
	// ScopeTrain fits on the training split only. Test rows may then fall
	// outside [0,1].
	ScopeTrain Scope = iota
	// ScopeFull fits on every sample, test split included. This reproduces
	// the survey notebooks' numbers at the cost of leaking test statistics.
	ScopeFull
)

func (s Scope) String() string {
	if s == ScopeFull {
		return "full"
	}

	return "train"
}

// ParseScope accepts "train" (or empty) and "full".
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "train":
		return ScopeTrain, nil
	case "full", "all":
		return ScopeFull, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, s)
}
