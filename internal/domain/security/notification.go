package security

import (
	"context"

	"github.com/oshokin/security-panel/internal/logger"
)

// Notification is an advisory message emitted by the controller.
// Notifications are not part of the state contract.
type Notification string

const (
	// NotificationCodeAccepted is emitted when a supplied code matches.
	NotificationCodeAccepted Notification = "Code accepted"
	// NotificationInvalidCode is emitted when a supplied code does not match.
	NotificationInvalidCode Notification = "Invalid code"
	// NotificationDisarmed is emitted on entering the disarmed state.
	NotificationDisarmed Notification = "System disarmed"
	// NotificationArmed is emitted on entering the armed state.
	NotificationArmed Notification = "System armed"
	// NotificationAlarmSounded is emitted on entering the alarm state.
	NotificationAlarmSounded Notification = "Alarm sounded"
	// NotificationAlarmStopped is emitted on leaving the alarm state.
	NotificationAlarmStopped Notification = "Alarm stopped"
	// NotificationCallPolice is emitted on entering the silent alarm state.
	NotificationCallPolice Notification = "Call Police"
)

// Notifier receives controller notifications.
// It is called while the controller lock is held and must not call back into the controller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes notifications to the logger stored in the context.
// Rejected codes and alarms are logged as warnings.
type LogNotifier struct{}

// Notify logs the notification.
func (LogNotifier) Notify(ctx context.Context, n Notification) {
	switch n {
	case NotificationInvalidCode, NotificationAlarmSounded, NotificationCallPolice:
		logger.Warn(ctx, string(n))
	case NotificationCodeAccepted, NotificationDisarmed, NotificationArmed, NotificationAlarmStopped:
		logger.Info(ctx, string(n))
	default:
		logger.Info(ctx, string(n))
	}
}
