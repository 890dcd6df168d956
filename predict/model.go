/*
Package predict provides the rent prediction collaborator.

PURPOSE:
  Wraps a pre-trained regression model behind the Predictor interface.
  The rest of the system treats the model as opaque: features in, a
  scalar rent out. The concrete implementation here is a linear model
  whose coefficients live in a JSON artifact produced by the training
  pipeline.

MODEL ARTIFACT:
  {
    "model_version": "rent-lr-2024-05",
    "intercept": 4200.0,
    "numeric": {"bhk": 3100.0, "size": 11.5, "bathroom": 950.0, "floor_level": 120.0},
    "categorical": {
      "furnishing_status": {"Furnished": 4800.0, "Semi-Furnished": 2100.0},
      "city": {"Mumbai": 14000.0, "Bangalore": 6500.0},
      ...
    }
  }

  Unknown categorical values contribute zero weight, so the model never
  fails over unseen cities or localities.

FAILURE MODE:
  A missing or corrupt artifact is the one condition that halts the
  prediction flow entirely: no prediction can proceed without it. It is
  fatal to the current action, not to the process.

INVARIANT:
  Predictions are clamped at zero - rent is never negative.

SEE ALSO:
  - features.go: Feature extraction from raw field values
  - tenancy: Consumes the prediction as Record.PredictedRent
*/
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// ErrModelArtifactMissing is returned when the model artifact cannot be
// loaded. Callers should halt the prediction action.
var ErrModelArtifactMissing = errors.New("model artifact missing")

// =============================================================================
// PREDICTOR - Opaque regression collaborator
// =============================================================================

// Predictor produces a rent figure from a feature record. The core
// never inspects its internals.
type Predictor interface {
	Predict(f Features) (decimal.Decimal, error)
}

// =============================================================================
// LINEAR MODEL - Coefficients from a JSON artifact
// =============================================================================

// LinearModel is a trained linear regression: intercept plus numeric
// coefficients plus one weight table per categorical feature.
type LinearModel struct {
	Version     string                        `json:"model_version"`
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// LoadModel reads the model artifact from disk. A missing file or
// malformed JSON maps to ErrModelArtifactMissing.
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelArtifactMissing, path, err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelArtifactMissing, path, err)
	}
	if m.Numeric == nil && m.Categorical == nil {
		return nil, fmt.Errorf("%w: %s: artifact has no coefficients", ErrModelArtifactMissing, path)
	}
	return &m, nil
}

// Predict evaluates the linear model. Raw outputs below zero clamp to
// zero.
func (m *LinearModel) Predict(f Features) (decimal.Decimal, error) {
	sum := m.Intercept

	for name, value := range f.numeric() {
		sum += m.Numeric[name] * value
	}
	for name, value := range f.categorical() {
		sum += m.Categorical[name][value]
	}

	if sum < 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(sum).Round(2), nil
}
