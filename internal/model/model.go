package model

import "time"

// User is a persisted portal account. The password hash never leaves the
// server; it is excluded from every serialized form.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

type SchoolFeatures struct {
	Dashboard  bool `json:"dashboard"`
	Class      bool `json:"class"`
	Subject    bool `json:"subject"`
	Students   bool `json:"students"`
	Teachers   bool `json:"teachers"`
	Attendance bool `json:"attendance"`
	Fees       bool `json:"fees"`
}

func DefaultSchoolFeatures() SchoolFeatures {
	return SchoolFeatures{
		Dashboard:  true,
		Class:      true,
		Subject:    true,
		Students:   true,
		Teachers:   true,
		Attendance: true,
		Fees:       true,
	}
}

type School struct {
	ID           string         `json:"id"`
	SchoolName   string         `json:"school_name"`
	OwnerName    string         `json:"owner_name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	City         string         `json:"city,omitempty"`
	State        string         `json:"state,omitempty"`
	SchoolImage  string         `json:"school_image,omitempty"`
	IsActive     bool           `json:"isActive"`
	Features     SchoolFeatures `json:"features"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type Student struct {
	ID                 string    `json:"id"`
	SchoolID           string    `json:"school"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	DateOfBirth        time.Time `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	Guardian           string    `json:"guardian"`
	GuardianPhone      string    `json:"guardian_phone"`
	StudentImage       string    `json:"student_image,omitempty"`
	RegistrationNumber string    `json:"registration_number"`
	JoiningDate        time.Time `json:"joining_date"`
	PasswordHash       string    `json:"-"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type Teacher struct {
	ID            string    `json:"id"`
	SchoolID      string    `json:"school"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Qualification string    `json:"qualification"`
	DateOfBirth   time.Time `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	PhoneNumber   string    `json:"phone_number"`
	TeacherImage  string    `json:"teacher_image,omitempty"`
	JoiningDate   time.Time `json:"joining_date"`
	PasswordHash  string    `json:"-"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Class struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school"`
	ClassText string    `json:"class_text"`
	ClassNum  string    `json:"class_num"`
	CreatedAt time.Time `json:"createdAt"`
}

type Subject struct {
	ID              string    `json:"id"`
	SchoolID        string    `json:"school"`
	SubjectName     string    `json:"subject_name"`
	SubjectCodename string    `json:"subject_codename"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Attendance struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school"`
	StudentID string    `json:"student"`
	TeacherID string    `json:"teacher"`
	ClassID   string    `json:"class"`
	SubjectID string    `json:"subject"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Installment struct {
	Title     string    `json:"title"`
	FeesPaid  int64     `json:"feesPaid"`
	FeesLeft  int64     `json:"feesLeft"`
	TotalFees int64     `json:"totalFees"`
	LastDate  time.Time `json:"lastDate"`
	Status    string    `json:"status"`
}

type Fees struct {
	ID           string        `json:"id"`
	SchoolID     string        `json:"school"`
	StudentID    string        `json:"student"`
	StudentName  string        `json:"studentName"`
	ClassID      string        `json:"class"`
	ClassName    string        `json:"className"`
	Installments []Installment `json:"installments"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type Ticket struct {
	ID           string    `json:"id"`
	SchoolID     string    `json:"school"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IssueArea    string    `json:"issueArea"`
	TicketImages []string  `json:"ticketImages"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
