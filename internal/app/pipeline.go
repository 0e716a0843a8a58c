package app

import (
	"log"
	"time"

	"github.com/ayusman/gesturebeats/internal/detector"
	"github.com/ayusman/gesturebeats/internal/gesture"
	"github.com/ayusman/gesturebeats/internal/session"
	"github.com/ayusman/gesturebeats/internal/store"
	"github.com/ayusman/gesturebeats/internal/synth"
)

// run is the pipeline loop. All engine state is touched here and
// nowhere else.
func (a *App) run() {
	defer close(a.done)

	for {
		select {
		case <-a.stopCh:
			a.shutdown()
			return
		case cmd := <-a.commands:
			cmd()
		case fp := <-a.frames:
			a.processFrame(fp)
		}
	}
}

// shutdown drains pending commands, then finalizes any active
// recording. Queued frames are discarded: no trigger fires after stop.
func (a *App) shutdown() {
	for {
		select {
		case cmd := <-a.commands:
			cmd()
		default:
			if a.recorder.Recording() {
				if _, err := a.finalizeRecording(); err != nil {
					log.Printf("Finalize recording on shutdown: %v", err)
				}
			}
			return
		}
	}
}

// processFrame runs one tracking frame through classification, the
// debounce gate and, for confident gestures, synthesis.
func (a *App) processFrame(fp detector.FramePair) {
	for _, hand := range detector.Hands() {
		lm := fp.ByHand(hand)
		if lm == nil {
			continue
		}

		obs := a.classifier.Classify(lm)
		stable := a.debouncer.Update(hand, obs)
		if stable.Symbol == gesture.SymbolNone || stable.Confidence < a.config.Threshold {
			continue
		}

		a.trigger(hand, stable)
	}
}

// trigger synthesizes one tone for a confident stable gesture and
// feeds it to playback and, when recording, the session log.
func (a *App) trigger(hand detector.Hand, stable gesture.Stable) {
	instrument := a.instruments[hand]
	buf, note, err := a.synth.Synthesize(instrument, stable.Symbol, hand, a.volumes[hand])
	if err != nil {
		log.Printf("Synthesize %s/%s: %v", instrument, stable.Symbol, err)
		return
	}
	a.chain.Apply(buf)
	a.mixer.Publish(buf)

	event := session.Event{
		Timestamp:  a.eventTimestamp(),
		Hand:       hand,
		Instrument: instrument,
		Gesture:    stable.Symbol,
		Note:       note,
		Duration:   synth.ToneDuration.Seconds(),
	}
	a.recorder.Append(buf, event)

	select {
	case a.events <- event:
	default:
	}
}

// eventTimestamp is seconds since recording start while recording,
// otherwise seconds since pipeline start.
func (a *App) eventTimestamp() float64 {
	if a.recorder.Recording() {
		return a.recorder.Elapsed().Seconds()
	}
	return time.Since(a.started).Seconds()
}

// finalizeRecording stops the recorder and, when a session was
// produced, indexes it in the store. An index failure is logged but
// does not discard the written artifacts.
func (a *App) finalizeRecording() (*session.Artifacts, error) {
	events := a.recorder.Log().Events()

	art, err := a.recorder.Stop()
	if err != nil || art == nil {
		return art, err
	}
	log.Printf("Recording stopped: %s (%d events)", art.SessionID, len(events))

	if a.config.Store != nil {
		sess := store.Session{
			ID:          art.SessionID,
			StartedAt:   time.Now().Add(-time.Duration(art.Duration * float64(time.Second))),
			Duration:    art.Duration,
			AudioPath:   art.AudioPath,
			EventsPath:  art.EventsPath,
			MetricsPath: art.MetricsPath,
		}
		if err := a.config.Store.Sessions().Create(&sess, events); err != nil {
			log.Printf("Index session %s: %v", art.SessionID, err)
		}
	}
	return art, nil
}
