// Package task stores, validates, and orders per-owner task collections.
//
// Each owner's collection is a single JSON dataset:
//
//	{
//	  "schema_version": 1,
//	  "owner": "you@example.com",
//	  "tasks": [
//	    {
//	      "id": "6f1c6e0a-...",
//	      "title": "Review project requirements",
//	      "description": "Read carefully",
//	      "priority": "high",
//	      "due_date": "2025-06-01",
//	      "done": false,
//	      "created_at": "2025-01-01T00:00:00Z",
//	      "position": 0
//	    }
//	  ]
//	}
//
// # Validation
//
// Loading performs minimal structural checks (schema_version, task id,
// title, priority enum, due date format). Full JSON Schema validation
// against the embedded schema is available via ValidateSchema and is
// used by the doctor command.
//
// # Ordering
//
// Display order is recomputed on every List call, never cached:
// not-done tasks first, then ascending due date, with tasks lacking a
// due date sorted last. Ordered returns the manual (positional) order
// instead; Reorder splices that order by index.
package task
