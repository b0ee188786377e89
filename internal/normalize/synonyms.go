package normalize

// Synonym keys, in priority order, probed for each canonical field.
var (
	textKeys   = []string{"text", "name", "label", "value"}
	bulletKeys = []string{"text", "originalText", "improved", "original", "value", "name"}

	resumeBasicsKeys = []string{"basics", "header", "contact"}
	resumeWorkKeys   = []string{"work", "experience"}
	resumeAwardKeys  = []string{"awards", "achievements"}

	profileListKeys    = []string{"profiles", "links"}
	profileNetworkKeys = []string{"network", "label", "name"}
	profileURLKeys     = []string{"url", "link", "website"}

	basicsTitleKeys = []string{"title", "label"}
	basicsNameKeys  = []string{"name", "fullName"}
	basicsEmailKeys = []string{"email", "emailAddress"}
	basicsPhoneKeys = []string{"phone", "phoneNumber", "mobile"}
	basicsURLKeys   = []string{"url", "website", "link"}

	locationRegionKeys = []string{"region", "state"}

	startDateKeys = []string{"startDate", "start", "from"}
	endDateKeys   = []string{"endDate", "end", "to"}

	workCompanyKeys    = []string{"company", "employer", "organization", "name"}
	workPositionKeys   = []string{"position", "role", "title", "jobTitle"}
	workHighlightKeys  = []string{"highlights", "bullets", "achievements", "responsibilities", "points"}
	educationSchoolKey = []string{"institution", "school", "university", "organization"}
	educationAreaKeys  = []string{"area", "field", "major", "program"}
	educationDegreeKey = []string{"degree", "studyType", "level"}

	projectNameKeys        = []string{"name", "title", "project"}
	projectDescriptionKeys = []string{"description", "summary"}
	projectTechKeys        = []string{"technologies", "stack", "tech", "tools"}
	projectHighlightKeys   = []string{"highlights", "bullets", "achievements"}
	projectURLKeys         = []string{"url", "link"}
	technologyNameKeys     = []string{"name", "skill", "technology", "tool", "value"}

	awardTitleKeys   = []string{"title", "name"}
	awardSummaryKeys = []string{"summary", "description"}

	languageNameKeys    = []string{"language", "name"}
	languageFluencyKeys = []string{"fluency", "level", "proficiency"}

	customTitleKeys = []string{"title", "name"}
	customItemKeys  = []string{"items", "lines"}

	skillGroupKeys    = []string{"items", "skills", "keywords"}
	skillCategoryKeys = []string{"category", "name", "label"}
	skillNameKeys     = []string{"name", "skill", "keyword", "value"}
)
