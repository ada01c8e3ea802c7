package azdo

// WIQLResponse is the result of a WIQL query: bare work-item references.
type WIQLResponse struct {
	WorkItems []WorkItemRef `json:"workItems"`
}

// WorkItemRef identifies a work item without its fields.
type WorkItemRef struct {
	ID int `json:"id"`
}

// WorkItemListResponse is the batch detail payload.
type WorkItemListResponse struct {
	Count int           `json:"count"`
	Value []WorkItemDTO `json:"value"`
}

// WorkItemDTO is a single work item with the fields we care about. Azure
// DevOps names fields with dotted reference paths, hence the long tags.
type WorkItemDTO struct {
	ID     int       `json:"id"`
	Fields FieldsDTO `json:"fields"`
}

// FieldsDTO contains the tracked field subset. Date fields arrive as raw
// strings in a not-quite-uniform ISO shape and are normalized downstream.
type FieldsDTO struct {
	Title       string       `json:"System.Title"`
	Type        string       `json:"System.WorkItemType"`
	State       string       `json:"System.State"`
	AssignedTo  *IdentityDTO `json:"System.AssignedTo,omitempty"`
	StoryPoints float64      `json:"Microsoft.VSTS.Scheduling.StoryPoints"`
	Tags        string       `json:"System.Tags"`

	CreatedDate   string `json:"System.CreatedDate"`
	ActivatedDate string `json:"Microsoft.VSTS.Common.ActivatedDate"`
	ResolvedDate  string `json:"Microsoft.VSTS.Common.ResolvedDate"`
	ClosedDate    string `json:"Microsoft.VSTS.Common.ClosedDate"`

	IterationPath string `json:"System.IterationPath"`
	AreaPath      string `json:"System.AreaPath"`
}

// IdentityDTO is the nested identity object on assignment fields.
type IdentityDTO struct {
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName,omitempty"`
}
