// Package board holds the kanban data model and the reducer that mutates it.
//
// A board is an ordered list of columns, each owning an ordered list of tasks:
//
//	[
//	  {
//	    "id": "1",
//	    "title": "To Do",
//	    "order": 0,
//	    "tasks": [
//	      {
//	        "id": "1735689600000",
//	        "title": "Write spec",
//	        "description": "Optional details",
//	        "tags": [{"id": "1735689600001", "label": "docs", "color": "blue"}],
//	        "columnId": "1",
//	        "order": 0
//	      }
//	    ]
//	  }
//	]
//
// # Reducer
//
// All mutations go through Reducer.Apply, which takes the previous board and
// an Action and returns the next board. The previous board is never modified,
// so callers can keep it around or drop it freely. Actions:
//
//   - AddColumn, EditColumn, DeleteColumn, MoveColumn
//   - AddTask, EditTask, DeleteTask, MoveTask
//
// # Order
//
// Column orders are dense and zero-based across the board. Task orders are
// dense and zero-based within their column. Every action that inserts,
// removes or moves an item renumbers the lists it touched.
//
// # Tag Colors
//
// Tags carry one of eight colors: red, orange, yellow, green, blue, purple,
// pink, gray.
package board
