package context_analyzer

import (
	"testing"

	"github.com/satish1373/automation-pipeline-demo/context_analyzer/models"
	"github.com/stretchr/testify/assert"
)

func TestMatchTags_Endpoints(t *testing.T) {
	rules := models.DefaultRules().EndpointRules

	assert.Equal(t, []string{"fetch_api_detected"}, MatchTags(`await fetch("/api/users")`, rules))
	assert.Equal(t, []string{"axios_api_detected"}, MatchTags(`import axios from 'axios'`, rules))
	assert.Equal(t, []string{"axios_api_detected", "fetch_api_detected"}, MatchTags("fetch( axios", rules))
	// "fetch (" is not "fetch(", and matching is case sensitive.
	assert.Empty(t, MatchTags("fetch (url); Axios.get()", rules))
}

func TestMatchTags_StateManagement(t *testing.T) {
	rules := models.DefaultRules().StateRules

	assert.Equal(t, []string{"React Hooks"}, MatchTags("const [s] = useReducer(r, 0)", rules))
	assert.Equal(t, []string{"Redux"}, MatchTags("import { configureStore } from '@reduxjs/toolkit'", rules))
	assert.Equal(t, []string{"Redux"}, MatchTags("// uses REDUX", rules))
	assert.Equal(t, []string{"React Context"}, MatchTags("<ThemeContext.Provider value={v}>", rules))
	assert.Empty(t, MatchTags("createContext()", rules))
	assert.Equal(t, []string{"React Context", "React Hooks", "Redux"},
		MatchTags("useState redux CONTEXT provider", rules))
}

func TestMatchTags_EmptyRuleNeverMatches(t *testing.T) {
	tags := MatchTags("anything", []models.TagRule{{Tag: "empty"}})
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestTagSet_SortedUnion(t *testing.T) {
	set := tagSet{}
	set.add("b", "a")
	set.add("a", "c")

	assert.Equal(t, []string{"a", "b", "c"}, set.sorted())
	assert.Equal(t, []string{}, tagSet{}.sorted())
}
