package anim

import (
	"github.com/chewxy/math32"
)

// Clip is a named set of tracks played together.
type Clip struct {
	Name     string
	Duration float32
	Tracks   []Track
}

// NewClip returns a clip whose duration is the last keyframe time of any
// track. Tracks whose values do not match their times are dropped.
func NewClip(name string, tracks []Track) *Clip {
	c := &Clip{Name: name}
	for _, track := range tracks {
		if !track.Valid() {
			continue
		}
		c.Tracks = append(c.Tracks, track)
		c.Duration = max(c.Duration, track.Times[len(track.Times)-1])
	}
	return c
}

// Mixer plays one clip at a time, driven by elapsed wall time.
type Mixer struct {
	// Loop wraps playback at the end of the clip. When false the clip holds
	// its last pose.
	Loop bool
	// TimeScale multiplies every Update delta.
	TimeScale float32

	clip    *Clip
	time    float32
	scratch [4]float32
}

// NewMixer returns a looping mixer at normal speed.
func NewMixer() *Mixer {
	return &Mixer{Loop: true, TimeScale: 1}
}

// Play starts clip from the beginning and applies its first pose.
func (m *Mixer) Play(clip *Clip) {
	m.clip = clip
	m.time = 0
	m.apply()
}

// Stop detaches the current clip, leaving targets in their last pose.
func (m *Mixer) Stop() {
	m.clip = nil
	m.time = 0
}

// Clip returns the clip being played, or nil.
func (m *Mixer) Clip() *Clip {
	return m.clip
}

// Time returns the playback position in seconds within the clip.
func (m *Mixer) Time() float32 {
	return m.time
}

// Update advances playback by dt seconds and poses the targets.
func (m *Mixer) Update(dt float64) {
	if m.clip == nil {
		return
	}

	m.time += float32(dt) * m.TimeScale
	switch d := m.clip.Duration; {
	case d <= 0:
		m.time = 0
	case m.Loop:
		m.time = math32.Mod(m.time, d)
		if m.time < 0 {
			m.time += d
		}
	default:
		m.time = min(max(m.time, 0), d)
	}
	m.apply()
}

func (m *Mixer) apply() {
	if m.clip == nil {
		return
	}
	for i := range m.clip.Tracks {
		track := &m.clip.Tracks[i]
		track.apply(m.scratch[:track.Path.Width()], m.time)
	}
}
