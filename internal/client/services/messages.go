package services

import "context"

// User-facing messages, in Hebrew as presented by the app.
const (
	MsgLoginSuccess   = "התחברות בוצעה בהצלחה"
	MsgBadCredentials = "שם משתמש או סיסמה שגויים"
	MsgConfigFault    = "שגיאת תצורה בשרת. אנא פנה למנהל המערכת"
	MsgSessionExpired = "תוקף הפעלה פג. אנא התחבר מחדש"
	MsgNoNetwork      = "שגיאת רשת. בדוק את החיבור לאינטרנט"
	MsgServerFault    = "שגיאת שרת. נסה שוב מאוחר יותר"
	MsgUnknown        = "שגיאה לא ידועה. נסה שוב מאוחר יותר"
	MsgLogoutSuccess  = "התנתקת בהצלחה"
	MsgUpdateRequired = "קיימת גרסת תוכנה חדשה, עליך לבצע תחילה עדכון תוכנה."

	// MsgServerStatusFmt is used for unclassified statuses; the argument is
	// the HTTP status code.
	MsgServerStatusFmt = "שגיאת שרת %d"
)

// Severity mirrors the toast color levels of the mobile UI.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notifier presents a short user-facing message (the toast analog).
type Notifier interface {
	Notify(ctx context.Context, message string, severity Severity)
}
