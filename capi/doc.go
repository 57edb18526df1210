/*
 * doc.go, part of gocell.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package capi exposes goCell through handles and status codes, the way
a C library would, so it can be wrapped for other languages.

Objects (cells, frames and trajectories) live in a registry and are
referred to by a Handle. Every entry point returns a Status. When a call
fails, the message is kept as the process-wide last error (see LastError),
and logged at the LogError level. Panics inside an entry point are
recovered and reported as GoError.

	h, st := capi.NewCell([3]float64{2, 3, 4})
	if st != capi.Success {
		log.Fatal(capi.LastError())
	}
	defer capi.Free(h)
	v := [3]float64{0.8, 1.7, -6}
	st = capi.CellWrap(h, &v)

Logging is configured with the Log* functions, or from a TOML file with
ConfigureLogging.
*/
package capi
