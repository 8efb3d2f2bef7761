package listing

import "github.com/FACorreiaa/hmhy-portal/internal/app/models"

func studentFields(s models.Student) []string {
	return []string{s.FirstName, s.LastName, s.PhoneNumber, s.TgUsername}
}

func lessonFields(l models.Lesson) []string {
	fields := []string{l.Name}
	if l.Student != nil {
		fields = append(fields, l.Student.FirstName, l.Student.LastName)
	}
	return fields
}

func transactionFields(t models.Transaction) []string {
	fields := []string{string(t.Status), t.Status.Label(), t.Provider}
	if t.Student != nil {
		fields = append(fields, t.Student.Name)
	}
	if t.Teacher != nil {
		fields = append(fields, t.Teacher.Name)
	}
	return fields
}

// SearchStudents matches names, phone number and telegram username.
func SearchStudents(students []models.Student, query string) []models.Student {
	return Filter(students, query, studentFields)
}

// SearchLessons matches the lesson name and the booked student's name.
func SearchLessons(lessons []models.Lesson, query string) []models.Lesson {
	return Filter(lessons, query, lessonFields)
}

// SearchTransactions matches party names, status and provider.
func SearchTransactions(txs []models.Transaction, query string) []models.Transaction {
	return Filter(txs, query, transactionFields)
}
