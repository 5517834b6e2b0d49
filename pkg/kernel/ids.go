package kernel

import "github.com/google/uuid"

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func GenerateUserID() UserID     { return UserID(uuid.NewString()) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func GenerateJobID() JobID     { return JobID(uuid.NewString()) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func GenerateApplicationID() ApplicationID     { return ApplicationID(uuid.NewString()) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type NotificationID string

func NewNotificationID(id string) NotificationID { return NotificationID(id) }
func GenerateNotificationID() NotificationID     { return NotificationID(uuid.NewString()) }
func (n NotificationID) String() string          { return string(n) }
func (n NotificationID) IsEmpty() bool           { return string(n) == "" }
