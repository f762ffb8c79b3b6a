package lesson

// SentenceResult is the outcome of checking a filled sentence.
type SentenceResult struct {
	// Graded is false when the lesson has no answer key; such submissions
	// are not counted as attempts.
	Graded   bool
	Correct  bool
	PerBlank map[string]bool
}

// BlankIDs returns the blank ids in sentence order.
func (c *SentenceBuilderConfig) BlankIDs() []string {
	var ids []string
	for _, t := range c.Tokens {
		if t.Kind == TokenBlank {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Check grades filled blanks against the answer key. A blank is correct
// only when an expected word exists and matches exactly.
func (c *SentenceBuilderConfig) Check(filled map[string]string) SentenceResult {
	if c.Answers == nil {
		return SentenceResult{}
	}
	res := SentenceResult{Graded: true, Correct: true, PerBlank: make(map[string]bool)}
	for _, id := range c.BlankIDs() {
		expected := c.Answers[id]
		got, ok := filled[id]
		hit := expected != "" && ok && got == expected
		res.PerBlank[id] = hit
		if !hit {
			res.Correct = false
		}
	}
	return res
}
