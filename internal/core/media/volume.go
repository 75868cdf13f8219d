// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package media implements the video-assembly engine. This file parses the
// free-form volume directive ("clear voice, soft music, fade out music at
// end") into the three channel gains and the fade style. It is a best-effort
// heuristic, not a grammar: rules live in an ordered table so precedence is
// auditable rule by rule, categorical keywords apply first, and explicit
// numeric values (percentages, then decimals) override them. Anything
// unmatched keeps its default.
package media

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// channel identifies which gain a rule adjusts.
type channel int

const (
	chVideo channel = iota
	chMusic
	chVoice
)

// volumeRule binds a set of trigger phrases to a gain for one channel. Within
// a channel the first rule whose phrase appears in the directive wins.
type volumeRule struct {
	channel channel
	phrases []string
	gain    float64
}

// categoricalRules is the full keyword table, ordered by priority within each
// channel.
var categoricalRules = []volumeRule{
	// Background music.
	{chMusic, []string{"loud music", "high music"}, 0.6},
	{chMusic, []string{"quiet music", "soft music", "low music"}, 0.2},
	{chMusic, []string{"medium music", "moderate music"}, 0.4},
	{chMusic, []string{"no music", "mute music"}, 0.0},
	// Voiceover.
	{chVoice, []string{"loud voice", "clear voice", "prominent voice"}, 1.2},
	{chVoice, []string{"quiet voice", "soft voice", "low voice"}, 0.7},
	{chVoice, []string{"medium voice", "moderate voice"}, 1.0},
	{chVoice, []string{"no voice", "mute voice"}, 0.0},
	// Native clip audio.
	{chVideo, []string{"loud video", "keep video audio"}, 0.8},
	{chVideo, []string{"quiet video", "mute video", "no video audio"}, 0.0},
	{chVideo, []string{"medium video"}, 0.5},
}

// Numeric overrides. Matching is by keyword proximity, not position: the
// channel keyword anywhere before the number claims it.
var (
	percentPatterns = map[channel]*regexp.Regexp{
		chMusic: regexp.MustCompile(`music.*?(\d+)%`),
		chVoice: regexp.MustCompile(`voice.*?(\d+)%`),
		chVideo: regexp.MustCompile(`video.*?(\d+)%`),
	}
	decimalPatterns = map[channel]*regexp.Regexp{
		chMusic: regexp.MustCompile(`music.*?(\d*\.\d+)`),
		chVoice: regexp.MustCompile(`voice.*?(\d*\.\d+)`),
		chVideo: regexp.MustCompile(`video.*?(\d*\.\d+)`),
	}
)

// DirectiveResult is the full interpretation of one volume directive, derived
// once per run and reused across the mixdown stage.
type DirectiveResult struct {
	Gains model.VolumeGains
	Fade  FadeStyle
}

// ParseDirective converts a natural-language volume instruction into channel
// gains and a fade style. Parsing is case-insensitive and deterministic;
// conflicting phrases resolve by table order, never by error. An empty
// directive yields the defaults unchanged.
func ParseDirective(directive string) DirectiveResult {
	lower := strings.ToLower(directive)
	gains := model.DefaultVolumeGains()

	// Categorical keywords, first match per channel wins.
	matched := map[channel]bool{}
	for _, rule := range categoricalRules {
		if matched[rule.channel] {
			continue
		}
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				setGain(&gains, rule.channel, rule.gain)
				matched[rule.channel] = true
				break
			}
		}
	}

	// Percentage overrides, then decimal overrides. Later wins.
	for ch, pattern := range percentPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				setGain(&gains, ch, v/100)
			}
		}
	}
	for ch, pattern := range decimalPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				setGain(&gains, ch, v)
			}
		}
	}

	return DirectiveResult{Gains: gains, Fade: fadeStyleFor(lower)}
}

// fadeStyleFor selects the fade style from the directive's fade keywords.
func fadeStyleFor(lower string) FadeStyle {
	switch {
	case strings.Contains(lower, "dramatic fade"),
		strings.Contains(lower, "long fade"),
		strings.Contains(lower, "slow fade"):
		return FadeDramatic
	case strings.Contains(lower, "quick fade"),
		strings.Contains(lower, "fast fade"):
		return FadeQuick
	default:
		return FadeDefault
	}
}

func setGain(g *model.VolumeGains, ch channel, v float64) {
	switch ch {
	case chVideo:
		g.Video = v
	case chMusic:
		g.Music = v
	case chVoice:
		g.Voiceover = v
	}
}
