package material

import (
	"sort"
	"time"

	"tableflip.dev/eduhub/pkg/resource"
)

type seedRecord struct {
	name      string
	mediaType string
	subject   string
	uploader  string
	ageDays   int
	size      int64
	url       string
}

var seedRecords = []seedRecord{
	{
		name:      "Organic_Chemistry_Notes.pdf",
		mediaType: "application/pdf",
		subject:   "Chemistry",
		uploader:  "Dr. Amara Okafor",
		ageDays:   2,
		size:      482_113,
		url:       "https://eduhub.example.org/materials/organic-chemistry-notes.pdf",
	},
	{
		name:      "PID_Control_Project.zip",
		mediaType: "application/zip",
		subject:   "Physics",
		uploader:  "Prof. Daniel Reyes",
		ageDays:   5,
		size:      3_215_904,
		url:       "https://eduhub.example.org/materials/pid-control-project.zip",
	},
	{
		name:      "Kinematics_Worksheet.docx",
		mediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		subject:   "Physics",
		uploader:  "Prof. Daniel Reyes",
		ageDays:   1,
		size:      58_240,
		url:       "https://eduhub.example.org/materials/kinematics-worksheet.docx",
	},
	{
		name:      "Calculus_Problem_Set_3.pdf",
		mediaType: "application/pdf",
		subject:   "Mathematics",
		uploader:  "Ms. Priya Nair",
		ageDays:   3,
		size:      201_776,
		url:       "https://eduhub.example.org/materials/calculus-problem-set-3.pdf",
	},
	{
		name:      "Titration_Lab_Report_Template.docx",
		mediaType: "application/msword",
		subject:   "Chemistry",
		uploader:  "Dr. Amara Okafor",
		ageDays:   7,
		size:      34_816,
		url:       "https://eduhub.example.org/materials/titration-lab-report-template.docx",
	},
}

// Seed returns the example catalog shown before anything was ever uploaded,
// most recent first. Ages are whole days before now.
func Seed(now time.Time, newID func() string) []*Record {
	out := make([]*Record, 0, len(seedRecords))
	for _, s := range seedRecords {
		out = append(out, New(newID(), Fields{
			Name:      s.name,
			MediaType: s.mediaType,
			Subject:   s.subject,
			Uploader:  s.uploader,
			SizeBytes: s.size,
			Resource:  resource.Ref(s.url),
		}, now.AddDate(0, 0, -s.ageDays)))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
