// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package critique asks a language model to review one exported day and
// parses the reply into summary, positives, negatives, recommendations
// and a 0-10 score.
package critique
