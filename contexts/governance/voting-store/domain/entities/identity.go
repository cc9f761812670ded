package entities

import "strings"

// MatchesCreator compares an identity token against the voting's stored
// creator token. Comparison is case-insensitive. Some wallet collaborators
// only surface an abbreviated creator label such as "0x1234...5678"; a stored
// token containing the elision marker matches any full token sharing its
// non-elided prefix. This prefix rule mirrors the collaborator's display
// format and is intentionally not a strong identity check.
func (v Voting) MatchesCreator(identity string) bool {
	identity = strings.TrimSpace(identity)
	creator := strings.TrimSpace(v.CreatorID)
	if identity == "" || creator == "" {
		return false
	}
	if idx := strings.Index(creator, "..."); idx >= 0 {
		prefix := creator[:idx]
		return strings.HasPrefix(strings.ToLower(identity), strings.ToLower(prefix))
	}
	return strings.EqualFold(identity, creator)
}
