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

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirectiveDefaults(t *testing.T) {
	result := ParseDirective("")
	assert.Equal(t, 0.3, result.Gains.Video)
	assert.Equal(t, 0.4, result.Gains.Music)
	assert.Equal(t, 1.0, result.Gains.Voiceover)
	assert.Equal(t, FadeDefault, result.Fade)
}

func TestParseDirectiveCategorical(t *testing.T) {
	result := ParseDirective("Clear voice, soft music")
	assert.Equal(t, 1.2, result.Gains.Voiceover)
	assert.Equal(t, 0.2, result.Gains.Music)
	assert.Equal(t, 0.3, result.Gains.Video, "video channel keeps its default")

	result = ParseDirective("loud music, mute video audio")
	assert.Equal(t, 0.6, result.Gains.Music)
	assert.Equal(t, 0.0, result.Gains.Video)

	result = ParseDirective("no voice, keep video audio")
	assert.Equal(t, 0.0, result.Gains.Voiceover)
	assert.Equal(t, 0.8, result.Gains.Video)
}

func TestParseDirectiveFirstMatchWins(t *testing.T) {
	// Table order resolves conflicting phrases, so loud beats quiet here.
	result := ParseDirective("loud music but also quiet music")
	assert.Equal(t, 0.6, result.Gains.Music)
}

func TestParseDirectivePercent(t *testing.T) {
	result := ParseDirective("music at 25%")
	assert.Equal(t, 0.25, result.Gains.Music)

	// Explicit numbers override categorical keywords.
	result = ParseDirective("soft music at 75%, voice at 110%")
	assert.Equal(t, 0.75, result.Gains.Music)
	assert.Equal(t, 1.1, result.Gains.Voiceover)
}

func TestParseDirectiveDecimal(t *testing.T) {
	result := ParseDirective("set video volume to 0.15")
	assert.Equal(t, 0.15, result.Gains.Video)

	result = ParseDirective("voice gain .9")
	assert.Equal(t, 0.9, result.Gains.Voiceover)
}

func TestParseDirectiveFadeStyles(t *testing.T) {
	assert.Equal(t, FadeDramatic, ParseDirective("dramatic fade at the end").Fade)
	assert.Equal(t, FadeDramatic, ParseDirective("slow fade out").Fade)
	assert.Equal(t, FadeQuick, ParseDirective("quick fade").Fade)
	assert.Equal(t, FadeDefault, ParseDirective("fade the music").Fade)
}
