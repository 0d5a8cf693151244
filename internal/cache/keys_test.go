package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "byid",
			identifier:  "user-1",
			paramsKey:   nil,
			expectedKey: "surveygen:quiz:byid:user-1",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "byid",
			identifier:  "user-1",
			paramsKey:   []string{},
			expectedKey: "surveygen:quiz:byid:user-1",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quiz",
			objectType:  "byid",
			identifier:  "user-1",
			paramsKey:   []string{"quiz-1"},
			expectedKey: "surveygen:quiz:byid:user-1:quiz-1",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "history",
			identifier:  "user-1",
			paramsKey:   []string{"page1", "size20"},
			expectedKey: "surveygen:quiz:history:user-1:page1_size20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
