// SPDX-License-Identifier: MIT

// Package train fits a Learner to examples one sample at a time.
//
// Trainer is generic over the input type, so the message-passing model
// (per-sample feature matrices) and the feed-forward baseline (plain
// vectors) share one loop:
//
//	for each epoch:
//	    for each training example (optionally shuffled):
//	        zero gradients → accumulate loss and gradients → optimizer step
//	    record the epoch's mean loss
//	evaluate mean squared error on the test set without updates
//
// A NaN or Inf loss or gradient does not stop the epoch it occurs in: the
// offending sample is skipped (no step), the epoch completes, and Fit then
// returns the partial Report with ErrNonFinite.
package train
