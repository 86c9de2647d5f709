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

package board

import (
	"errors"
	"fmt"
)

// Gem is one of the gem images that can be printed on a tile.
type Gem int

// gems is the catalog of gem names, in wire order.
var gems = [...]string{
	"alexandrite-pear-shape", "alexandrite", "almandine-garnet", "amethyst",
	"ametrine", "ammolite", "apatite", "aplite", "apricot-square-radiant",
	"aquamarine", "australian-marquise", "aventurine", "azurite", "beryl",
	"black-obsidian", "black-onyx", "black-spinel-cushion",
	"blue-ceylon-sapphire", "blue-cushion", "blue-pear-shape",
	"blue-spinel-heart", "bulls-eye", "carnelian", "chrome-diopside",
	"chrysoberyl-cushion", "chrysolite", "citrine-checkerboard", "citrine",
	"clinohumite", "color-change-oval", "cordierite", "diamond",
	"dumortierite", "emerald", "fancy-spinel-marquise", "garnet",
	"golden-diamond-cut", "goldstone", "grandidierite", "gray-agate",
	"green-aventurine", "green-beryl-antique", "green-beryl",
	"green-princess-cut", "grossular-garnet", "hackmanite", "heliotrope",
	"hematite", "iolite-emerald-cut", "jasper", "jaspilite", "kunzite-oval",
	"kunzite", "labradorite", "lapis-lazuli", "lemon-quartz-briolette",
	"magnesite", "mexican-opal", "moonstone", "morganite-oval", "moss-agate",
	"orange-radiant", "padparadscha-oval", "padparadscha-sapphire", "peridot",
	"pink-emerald-cut", "pink-opal", "pink-round", "pink-spinel-cushion",
	"prasiolite", "prehnite", "purple-cabochon", "purple-oval",
	"purple-spinel-trillion", "purple-square-cushion", "raw-beryl",
	"raw-citrine", "red-diamond", "red-spinel-square-emerald-cut",
	"rhodonite", "rock-quartz", "rose-quartz", "ruby-diamond-profile", "ruby",
	"sphalerite", "spinel", "star-cabochon", "stilbite", "sunstone",
	"super-seven", "tanzanite-trillion", "tigers-eye", "tourmaline-laser-cut",
	"tourmaline", "unakite", "white-square", "yellow-baguette",
	"yellow-beryl-oval", "yellow-heart", "yellow-jasper", "zircon", "zoisite",
}

// GemN is the number of gems in the catalog.
const GemN = Gem(len(gems))

var gemIndex = func() map[string]Gem {
	index := make(map[string]Gem, len(gems))
	for i, name := range gems {
		index[name] = Gem(i)
	}

	return index
}()

var (
	ErrBadGem       = errors.New("board: unknown gem")
	ErrSameGems     = errors.New("board: a treasure needs two distinct gems")
	ErrDuplicateGem = errors.New("board: treasure appears on more than one tile")
)

// ParseGem looks up a gem by its name.
func ParseGem(name string) (Gem, error) {
	gem, found := gemIndex[name]
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrBadGem, name)
	}

	return gem, nil
}

func (gem Gem) String() string {
	if gem < 0 || gem >= GemN {
		return fmt.Sprintf("Gem(%d)", int(gem))
	}

	return gems[gem]
}

// Treasure is an unordered pair of distinct gems. The pair is stored in
// catalog order so that equal treasures compare equal with ==.
type Treasure struct {
	First, Second Gem
}

// NewTreasure creates the treasure made of the two given gems.
func NewTreasure(a, b Gem) (Treasure, error) {
	if a == b {
		return Treasure{}, fmt.Errorf("%w: %s", ErrSameGems, a)
	}

	if a > b {
		a, b = b, a
	}

	return Treasure{First: a, Second: b}, nil
}

// ParseTreasure creates a treasure from two gem names.
func ParseTreasure(a, b string) (Treasure, error) {
	first, err := ParseGem(a)
	if err != nil {
		return Treasure{}, err
	}

	second, err := ParseGem(b)
	if err != nil {
		return Treasure{}, err
	}

	return NewTreasure(first, second)
}

// TreasureAt returns the n-th treasure in a fixed enumeration of every
// possible gem pair, which is handy for generating boards with unique
// treasures.
func TreasureAt(n int) Treasure {
	for a := Gem(0); a < GemN; a++ {
		pairs := int(GemN - a - 1)
		if n < pairs {
			return Treasure{First: a, Second: a + 1 + Gem(n)}
		}

		n -= pairs
	}

	panic("board: treasure index out of range")
}

func (treasure Treasure) String() string {
	return treasure.First.String() + "+" + treasure.Second.String()
}
