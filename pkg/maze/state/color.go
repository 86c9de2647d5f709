// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Color identifies a player's pieces: either one of the named palette
// colors or a custom six digit hex RGB value.
type Color string

var Palette = []Color{
	"purple", "pink", "orange", "red", "blue",
	"green", "yellow", "black", "white",
}

var hexColor = regexp.MustCompile(`^[A-F0-9]{6}$`)

var ErrBadColor = errors.New("state: not a palette color or hex code")

// ParseColor validates a color name or hex code.
func ParseColor(s string) (Color, error) {
	for _, color := range Palette {
		if string(color) == s {
			return color, nil
		}
	}

	if hexColor.MatchString(s) {
		return Color(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrBadColor, s)
}

// NthColor returns a distinct color for the n-th player of a game,
// running through the palette before making up hex codes.
func NthColor(n int) Color {
	if n < len(Palette) {
		return Palette[n]
	}

	return Color(strings.ToUpper(fmt.Sprintf("%06x", (n*0x3F1A7)&0xFFFFFF)))
}
