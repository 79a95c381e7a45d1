// Package intent maps normalized message text to one of a closed intent
// vocabulary using a supervised bag-of-words classifier.
package intent

import (
	"fmt"
	"regexp"

	"github.com/jbrukh/bayesian"
	"github.com/pandhu/duitbot/internal/model"
)

// DefaultMinConfidence is the probability floor below which classification
// resolves to IntentUnknown instead of guessing.
const DefaultMinConfidence = 0.3

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// Classifier is a naive-Bayes intent classifier. It is trained once from
// the seed set and immutable afterwards, so concurrent Classify calls need
// no locking.
type Classifier struct {
	clf           *bayesian.Classifier
	classes       []bayesian.Class
	intents       []model.Intent
	minConfidence float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMinConfidence overrides the unknown-intent probability floor.
func WithMinConfidence(min float64) Option {
	return func(c *Classifier) { c.minConfidence = min }
}

// New trains a classifier from the static seed set.
func New(opts ...Option) (*Classifier, error) {
	intents := model.AllIntents()

	classes := make([]bayesian.Class, len(intents))
	for i, it := range intents {
		classes[i] = bayesian.Class(it)
	}

	c := &Classifier{
		clf:           bayesian.NewClassifier(classes...),
		classes:       classes,
		intents:       intents,
		minConfidence: DefaultMinConfidence,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, it := range intents {
		phrases, ok := seedPhrases[it]
		if !ok || len(phrases) < 4 {
			return nil, fmt.Errorf("intent %q needs at least 4 seed phrases, got %d", it, len(phrases))
		}
		for _, phrase := range phrases {
			c.clf.Learn(tokenize(phrase), bayesian.Class(it))
		}
	}

	return c, nil
}

// Classify maps normalized text to an intent. Ties and results below the
// confidence floor resolve to IntentUnknown rather than guessing.
func (c *Classifier) Classify(text string) (model.Intent, float64) {
	words := tokenize(text)
	if len(words) == 0 {
		return model.IntentUnknown, 0
	}

	scores, idx, strict := c.clf.ProbScores(words)
	if !strict {
		return model.IntentUnknown, 0
	}

	confidence := scores[idx]
	if confidence < c.minConfidence {
		return model.IntentUnknown, confidence
	}

	return c.intents[idx], confidence
}

func tokenize(text string) []string {
	return wordRe.FindAllString(text, -1)
}
