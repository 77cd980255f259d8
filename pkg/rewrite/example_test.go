package rewrite_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/loggerfix/pkg/rewrite"
	"github.com/walteh/loggerfix/pkg/rule"
)

func ExampleEngine_Rewrite() {
	engine := rewrite.NewEngine(rule.DefaultTable())

	content := strings.NewReader(`logger.error('Save failed', { error: err.message, stack: err.stack });`)

	result, err := engine.Rewrite(context.Background(), content)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Modified: logger.error('Save failed', err);
	// Changes: 1
	// Was Modified: true
}

func ExampleEngine_RewriteString() {
	engine := rewrite.NewEngine(rule.DefaultTable())

	result := engine.RewriteString(`logger.error('Post failed', { postError: error.message, postId });`)
	fmt.Println(string(result.ModifiedContent))
	for _, c := range result.Counts() {
		fmt.Printf("%s: %d\n", c.Rule, c.Count)
	}

	// Output:
	// logger.error('Post failed', new Error(error.message), { postErrorType: 'postError', postId });
	// named-error: 1
}
