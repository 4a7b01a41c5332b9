package markov

// Generate walks a chain built by Train from SOCState until EOCState or
// maxSteps, and renders the visited states with tok. A nil src uses the
// chain's source. A dead end in the chain ends the text as if EOCState had
// been reached.
func Generate(c *Chain[string], tok Tokenizer, src Source, maxSteps int) (string, error) {
	w := c.NewWalker(src)
	if err := w.Start(SOCState); err != nil {
		return "", err
	}

	names, err := w.RunToTerminal(maxSteps)
	if err != nil {
		if !IsNoTransitionError(err) {
			return "", err
		}
		c.logger.Debug("Generation ended at a dead end", "steps", len(names), "error", err)
	}
	return tok.Render(names), nil
}
