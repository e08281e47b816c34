// Package history keeps the list of recently used rename templates.
//
// The list is stored as a single line of comma-separated templates, most
// recent last:
//
//	{layer:name}_{nn:1},{layer:name:lowercase}-{layer:width}x{layer:height}{doc:rulerunits}.png
//
// The file is read once when the renamer starts and overwritten once after
// a rename is confirmed. There is no locking; the last writer wins.
//
// Commas inside templates are not escaped. Such a template is split into
// two entries the next time the file is loaded.
package history
