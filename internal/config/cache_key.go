package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ParticipantLoginKey returns the cache key for a participant's login session
func (r *CacheKeyStruct) ParticipantLoginKey(participantID string) string {
	return fmt.Sprintf("login:participant:%s", participantID)
}

// AdminLoginKey returns the cache key for an admin's login session
func (r *CacheKeyStruct) AdminLoginKey(adminID string) string {
	return fmt.Sprintf("login:admin:%s", adminID)
}

// SessionAnswersKey returns the cache key for an exam session's answer hash
func (r *CacheKeyStruct) SessionAnswersKey(sessionID string) string {
	return fmt.Sprintf("session:%s:answers", sessionID)
}

// SubjectPaperKey returns the cache key for a subject's question payload
func (r *CacheKeyStruct) SubjectPaperKey(subjectID string) string {
	return fmt.Sprintf("subject:%s:paper", subjectID)
}

// SubjectAnswerKeysKey returns the cache key for a subject's answer keys
func (r *CacheKeyStruct) SubjectAnswerKeysKey(subjectID string) string {
	return fmt.Sprintf("subject:%s:keys", subjectID)
}

// SessionDeadlineIndex returns the sorted-set key holding session deadlines
func (r *CacheKeyStruct) SessionDeadlineIndex() string {
	return "session_deadlines"
}

var CacheKey = NewCacheKeyStruct()
