package slider

// SetAutoplay starts or stops the autoplay timer. The current index is not
// affected. Enabling an already running timer leaves its countdown alone.
func (c *Controller) SetAutoplay(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive.Load() || c.state.AutoplayEnabled == enabled {
		return
	}

	c.state.AutoplayEnabled = enabled

	if enabled {
		c.startAutoplayLocked()
	} else {
		c.stopAutoplayLocked()
	}
}

// startAutoplayLocked (re)arms the timer for a full interval from now.
// Must be called with mu held.
func (c *Controller) startAutoplayLocked() {
	c.stopAutoplayLocked()

	gen := c.autoplayGen

	c.autoplay = c.clock.AfterFunc(c.cfg.Interval, func() {
		c.onAutoplayTick(gen)
	})
}

// stopAutoplayLocked cancels the timer. Bumping the generation makes a
// firing that already escaped Stop a no-op. Must be called with mu held.
func (c *Controller) stopAutoplayLocked() {
	if c.autoplay != nil {
		c.autoplay.Stop()
		c.autoplay = nil
	}

	c.autoplayGen++
}

// onAutoplayTick re-arms the timer before advancing, so a tick that finds a
// transition in flight simply waits for the next interval.
func (c *Controller) onAutoplayTick(gen uint64) {
	c.mu.Lock()

	if !c.alive.Load() || !c.state.AutoplayEnabled || gen != c.autoplayGen {
		c.mu.Unlock()

		return
	}

	c.startAutoplayLocked()
	c.mu.Unlock()

	autoplayTicks.WithLabelValues(c.name).Inc()

	c.Next()
}
