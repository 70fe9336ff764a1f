// Package notify composes and dispatches order notifications: an HTML mail
// body and a MarkdownV2 Telegram message, sent concurrently over their own
// channels.
package notify

import "strings"

// The two escapers cover disjoint character sets and must never be applied
// to each other's output. Escape exactly once, at render time; the results
// are not safe to re-escape.

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes the three characters that break HTML text context.
// Nothing else is touched; this is not a sanitizer.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"~", `\~`,
	"`", "\\`",
	">", `\>`,
	"#", `\#`,
	"=", `\=`,
	"|", `\|`,
	"{", `\{`,
	"}", `\}`,
	".", `\.`,
	"!", `\!`,
	"+", `\+`,
	"-", `\-`,
)

// EscapeMarkdown backslash-escapes every character Telegram's MarkdownV2
// parse mode reserves.
func EscapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
