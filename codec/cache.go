/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package codec

import "sync"

// cache memoizes built codec trees by the type string as given so that
// repeated blocks carrying the same column type (the overwhelmingly
// common case for a steady stream) never re-walk the type grammar or
// re-allocate a codec tree. Entries are immutable once built, which is
// what makes sharing across concurrent decodes safe.
var cache sync.Map // map[string]Codec

func cacheGet(typeString string) (Codec, bool) {
	v, ok := cache.Load(typeString)
	if !ok {
		return nil, false
	}
	return v.(Codec), true
}

func cachePut(typeString string, c Codec) {
	actual, _ := cache.LoadOrStore(typeString, c)
	_ = actual
}
