package scanning

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cleanTranscript", func() {
	DescribeTable("strips code fences",
		func(input, expected string) {
			Expect(cleanTranscript(input)).To(Equal(expected))
		},
		Entry("plain text", "Acme\nTotal 5", "Acme\nTotal 5"),
		Entry("surrounding whitespace", "\n  Acme\nTotal 5 \n", "Acme\nTotal 5"),
		Entry("bare fence", "```\nAcme\nTotal 5\n```", "Acme\nTotal 5"),
		Entry("fence with language tag", "```text\nAcme\nTotal 5\n```", "Acme\nTotal 5"),
		Entry("unterminated fence", "```\nAcme", "Acme"),
		Entry("single line fence", "```Acme```", "Acme"),
		Entry("empty", "", ""),
	)
})
