// SPDX-License-Identifier: MIT

package train

import (
	"errors"
	"fmt"
)

// ErrTraining is the category sentinel for training failures.
var ErrTraining = errors.New("train: training error")

var (
	// ErrNonFinite indicates a NaN or Inf loss, gradient or prediction.
	ErrNonFinite = fmt.Errorf("%w: non-finite loss or gradient", ErrTraining)

	// ErrNoExamples indicates an empty training (or evaluation) set.
	ErrNoExamples = fmt.Errorf("%w: no examples", ErrTraining)

	// ErrInvalidEpochs indicates a non-positive epoch count.
	ErrInvalidEpochs = fmt.Errorf("%w: epochs must be > 0", ErrTraining)

	// ErrNilLearner indicates New was called without a learner.
	ErrNilLearner = fmt.Errorf("%w: nil learner", ErrTraining)
)
