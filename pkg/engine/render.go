package engine

// Render is the single render entry point (spec §4.4, §4.7), handed to
// the device driver as its RenderFunc. Called on the driver's audio
// thread; it must not allocate or block.
//
// Per block: load the current backend; drain live MIDI into the
// registry; tick the transport for each sample to get the declick gain
// envelope; process the backend; apply the gain envelope; copy the
// result into output; update metering. A panic anywhere in this path
// is caught and the block is silenced rather than propagated onto the
// platform's audio thread.
func (e *Engine) Render(output [][]float32, frames int) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("render panic recovered, silencing block", "id", e.id.String(), "panic", r)
			silence(output, frames)
		}
	}()

	backend := e.backend.Load()
	if backend == nil {
		silence(output, frames)
		return
	}

	if frames > len(e.gainScratch) {
		frames = len(e.gainScratch)
	}

	if e.midiEnabled {
		e.cycleReader.CycleRead(frames, e.bufferStart, e.cfg.SampleRate)
	}
	e.bufferStart += int64(frames)

	for i := 0; i < frames; i++ {
		_, gain := e.transportManager.Tick()
		e.gainScratch[i] = gain
	}

	backend.Process(frames)

	numOut := backend.NumOutputs()
	for ch := 0; ch < numOut; ch++ {
		master := backend.MasterChannel(ch)
		for i := 0; i < frames; i++ {
			g := e.gainScratch[i]
			if g != 1 {
				master[i] *= g
			}
		}
	}

	for ch := range output {
		if ch >= numOut {
			for i := 0; i < frames; i++ {
				output[ch][i] = 0
			}
			continue
		}
		copy(output[ch][:frames], backend.MasterChannel(ch)[:frames])
	}

	var left, right []float32
	if numOut > 0 {
		left = backend.MasterChannel(0)[:frames]
	}
	if numOut > 1 {
		right = backend.MasterChannel(1)[:frames]
	} else {
		right = left
	}
	stop := e.meteringManager.Update(left, right)
	stop()
}

func silence(output [][]float32, frames int) {
	for ch := range output {
		n := frames
		if n > len(output[ch]) {
			n = len(output[ch])
		}
		for i := 0; i < n; i++ {
			output[ch][i] = 0
		}
	}
}
