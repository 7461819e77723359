package developer

type colName string

// Roster columns. They sit in front of the dated columns, which is why
// every new snapshot is inserted at column 4.
const (
	ColumnDeveloper           colName = "Developer"
	ColumnReviewerNumber      colName = "Reviewer Number"
	ColumnPreferableReviewers colName = "Preferable Reviewers"
)

// Developer is one roster row plus the reviewers assigned to it in the
// current cycle. ReviewerNames never holds the developer's own name.
type Developer struct {
	Name                    string
	ReviewerNumber          int
	PreferableReviewerNames NameSet
	ReviewerNames           NameSet
	ReviewFor               NameSet
}

func New(name string, reviewerNumber int) *Developer {
	return &Developer{
		Name:                    name,
		ReviewerNumber:          reviewerNumber,
		PreferableReviewerNames: NameSet{},
		ReviewerNames:           NameSet{},
		ReviewFor:               NameSet{},
	}
}
