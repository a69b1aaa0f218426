// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package status owns the file writes of a reduction run and keeps score of
what happened to every file.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Results |
	|  (writes) |           | (tally) |
	+-----------+           +---------+

🎯 Purpose:
- Writes reduced bytes atomically and copies pass-through files verbatim
- Records one Result per processed file
- Formats outcomes and progress for the console
- Writes a machine-readable report of the run

🏷️ Outcomes:
- reduced: the image was re-encoded and written
- copied: the original bytes were copied to the destination
- skipped: nothing was written (in-place threshold miss or failed transform)
- failed: a copy or write went wrong; the run carried on

Directories are never reported; they are ignored before a Result exists.
*/
package status
