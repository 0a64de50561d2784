package domain

// RepositoryState is the state published by the article repository.
// Articles always belong to List; Sections change only on a section refresh.
type RepositoryState struct {
	Sections []SectionRef
	Articles []ArticleBrief
	List     ListDef
}

// InitialState is the state of a freshly constructed repository.
func InitialState() RepositoryState {
	return RepositoryState{
		Sections: []SectionRef{},
		Articles: []ArticleBrief{},
		List:     PopularViewed,
	}
}
