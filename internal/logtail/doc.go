// Package logtail reads the end of tote's log file and decodes its entries
// for the activity pane.
//
// # Reading
//
// Read keeps a ring buffer of maxLines strings and scans the file once, so
// memory stays proportional to the window rather than the file. A missing
// file yields no lines and no error; the logger may not have written yet.
//
//	lines, err := logtail.Read(path, 200)
//
// # Decoding
//
// The logger writes one JSON object per line (see internal/logging). Parse
// pulls out the timestamp, level, logger name and message, and keeps every
// other key as a Field sorted by name. Lines that are not JSON come back as
// Raw entries with the original text as the message.
//
// Entry.String renders a compact single line:
//
//	14:32:15 INFO  lists: operation committed list_id=7 operation=create_list
//
// Styling by level is left to the UI.
package logtail
