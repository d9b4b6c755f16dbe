package utils

import "github.com/bwmarrin/discordgo"

// HasGuildPermission reports whether the invoking member holds perm or is an
// administrator. Slash commands already gate on default member permissions;
// this is the server-side re-check.
func HasGuildPermission(i *discordgo.InteractionCreate, perm int64) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return i.Member.Permissions&perm == perm
}

// IsDeveloper reports whether userID is one of the configured developer IDs.
func IsDeveloper(developerIDs []string, userID string) bool {
	for _, id := range developerIDs {
		if id != "" && id == userID {
			return true
		}
	}
	return false
}
