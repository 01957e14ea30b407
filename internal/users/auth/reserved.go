// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "strings"

// reservedUsernames collide with first-level routes of the web app or would be
// confusing as public pages.
var reservedUsernames = map[string]struct{}{
	"about": {}, "account": {}, "admin": {}, "api": {}, "app": {}, "assets": {},
	"billing": {}, "blog": {}, "dashboard": {}, "demo": {}, "docs": {}, "forgot-password": {},
	"help": {}, "login": {}, "logout": {}, "me": {}, "pricing": {}, "privacy": {},
	"profile": {}, "register": {}, "reset-password": {}, "root": {}, "settings": {},
	"signup": {}, "sociallink": {}, "static": {}, "status": {}, "support": {},
	"terms": {}, "www": {},
}

// IsReservedUsername reports whether username may not be claimed by an account.
func IsReservedUsername(username string) bool {
	_, reserved := reservedUsernames[strings.ToLower(username)]
	return reserved
}
