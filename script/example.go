// seehuhn.de/go/worksheet - a guided classroom worksheet
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package script

// Example is a complete session: a team works through the checklist,
// sketches its station, fills in the presentation fields, submits and
// downloads the summary, then renames the station and submits again.
const Example = `# worksheet session script
surface:
  width: 600
  height: 450

events:
  # brainstorming checklist
  - toggle: 0
  - toggle: 1
  - check: {item: 4, checked: true}

  # the station: a hull, two solar panels and a docking arm
  - background: "#eeeeee"
  - tool: rect
  - stroke_width: 4
  - stroke_color: "#1f3a93"
  - gesture: [[220, 170], [380, 280]]
  - fill: "rgba(70, 130, 180, 0.5)"
  - gesture: [[60, 200], [200, 250]]
  - gesture: [[400, 200], [540, 250]]
  - tool: circle
  - fill: "rgba(255, 165, 0, 0.3)"
  - gesture: [[300, 225], [330, 225]]
  - tool: freehand
  - stroke_color: "#ff0000"
  - stroke_width: 3
  - gesture: [[300, 280], [305, 320], [320, 350], [350, 370], [390, 375]]

  # presentation
  - text: {field: station_name, value: Luna-1}
  - text: {field: presenter, value: Kim}
  - text: {field: special_feature, value: Has a garden module}

  - submit: true
  - export: true

  # second thoughts
  - text: {field: station_name, value: Luna-2}
  - submit: true
  - export: true
`
