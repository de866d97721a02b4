package constants

// Portal entity types: records granted portal access independent of the
// staff authentication system.
const (
	EntityStudent = "student"
	EntityTeacher = "teacher"
	EntityParent  = "parent"
)

var PortalEntityTypes = []string{
	EntityStudent,
	EntityTeacher,
	EntityParent,
}

func IsValidEntityType(t string) bool {
	for _, e := range PortalEntityTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Notification channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelBoth  = "both"
)

func IsValidChannel(ch string) bool {
	return ch == ChannelEmail || ch == ChannelSMS || ch == ChannelBoth
}
