package selector

import (
	"fmt"
	"strings"

	"github.com/lokvaani/commentengine/internal/models"
	"github.com/lokvaani/commentengine/internal/random"
)

// PolicyType is the keyword-derived subject of a post
type PolicyType struct {
	Name     string
	Action   string
	keywords []string
}

// Checked in order; the first type with a keyword in the post wins
var policyTypes = []PolicyType{
	{"amendment", "modify existing regulations and enhance compliance frameworks",
		[]string{"amendment", "amend", "modify", "change", "संशोधन"}},
	{"recruitment", "strengthen administrative capacity and institutional capabilities",
		[]string{"recruitment", "appointment", "officer", "भर्ती", "नियुक्ति"}},
	{"governance", "improve corporate governance standards and board effectiveness",
		[]string{"meeting", "board", "powers", "बैठक", "बोर्ड"}},
	{"restructuring", "facilitate corporate restructuring processes and business reorganization",
		[]string{"compromise", "arrangement", "amalgamation", "merger", "समझौता"}},
	{"insolvency", "enhance creditor protection mechanisms and debt resolution frameworks",
		[]string{"insolvency", "debt", "creditor", "दिवालिया", "ऋण"}},
	{"financial regulation", "strengthen financial sector oversight and regulatory coordination",
		[]string{"finance", "financial", "nbfc", "ifsca", "वित्तीय"}},
	{"professional services", "enhance professional service delivery and competitiveness",
		[]string{"professional", "multidisciplinary", "mdp", "consulting", "पेशेवर"}},
}

var defaultPolicyType = PolicyType{
	Name:   "regulatory reform",
	Action: "streamline regulatory processes and improve business environment",
}

var perspectives = map[models.Category]string{
	models.CategoryInsolvencyProfessional:       "enhance our professional practice and better serve distressed companies",
	models.CategoryInsolvencyProfessionalAgency: "strengthen institutional frameworks and professional standards",
	models.CategoryCorporateDebtor:              "provide clearer pathways for debt resolution and business recovery",
	models.CategoryCreditor:                     "improve recovery mechanisms and protect creditor interests",
	models.CategoryAcademics:                    "contribute to scholarly discourse and evidence-based policymaking",
	models.CategoryPartnershipFirms:             "address specific needs of partnership structures in the regulatory framework",
	models.CategoryProprietorshipFirms:          "consider the unique challenges faced by small and medium enterprises",
	models.CategoryInvestors:                    "create more predictable investment environments and reduce regulatory risks",
	models.CategoryUser:                         "ensure policies are practical and accessible to all stakeholders",
	models.CategoryOthers:                       "balance diverse stakeholder interests in the policy framework",
}

const defaultPerspective = "improve regulatory clarity and business operations"

var contextPhrases = []struct {
	phrase   string
	keywords []string
}{
	{"public consultation process", []string{"consultation", "comment"}},
	{"official notification mechanism", []string{"notification", "gazette"}},
	{"regulatory framework", []string{"rule", "regulation"}},
	{"financial implications and compliance costs", []string{"crore", "lakh", "financial", "money"}},
}

const (
	defaultContextPhrase = "regulatory implementation"
	maxContextPhrases    = 2
)

// A template receives the policy type, action, perspective, context phrase
// and category label; each uses a subset.
type templateFunc func(policyType, action, perspective, context, category string) string

var templates = []templateFunc{
	func(policyType, action, perspective, context, _ string) string {
		return fmt.Sprintf("This %s initiative represents a comprehensive approach to %s while ensuring %s. The proposed framework demonstrates the government's commitment to evidence-based policymaking and stakeholder engagement. We particularly appreciate the detailed consideration given to %s, which shows thorough preparation and consultation with industry experts. The implementation timeline appears realistic and provides adequate opportunity for organizations to adapt their operational procedures and compliance mechanisms. Furthermore, the clear articulation of objectives and expected outcomes will help establish measurable benchmarks for success. We believe this initiative will significantly enhance the regulatory environment while maintaining essential safeguards that protect all stakeholder interests and promote sustainable business practices.",
			policyType, action, perspective, context)
	},
	func(policyType, action, _, context, category string) string {
		return fmt.Sprintf("As representatives of the %s community, we strongly support the government's initiative to %s through this well-structured %s proposal. This development addresses several long-standing concerns within our sector while establishing a robust framework for future growth and compliance. The detailed provisions reflect extensive consultation with industry stakeholders and demonstrate a deep understanding of practical implementation challenges. We are particularly encouraged by the emphasis on %s, which will enhance operational efficiency and reduce regulatory uncertainty. The proposed monitoring and feedback mechanisms will ensure continuous improvement and adaptation based on real-world experience. This collaborative approach to policy development sets an excellent precedent for future regulatory reforms and demonstrates the government's commitment to creating an enabling business environment.",
			strings.ToLower(category), action, policyType, context)
	},
	func(policyType, action, perspective, context, _ string) string {
		return fmt.Sprintf("The proposed %s represents a landmark development in regulatory modernization that will fundamentally transform how we %s across the sector. This initiative demonstrates exceptional forward-thinking and will %s while establishing India as a leader in regulatory innovation. The comprehensive analysis of current challenges and the systematic approach to addressing them through this framework shows remarkable policy maturity. We commend the integration of %s throughout the proposal, which ensures both practical applicability and theoretical soundness. The clear delineation of responsibilities, timelines, and performance metrics will facilitate effective implementation and monitoring. This reform will not only address immediate sector needs but also create a scalable model that can adapt to future market dynamics and emerging regulatory challenges.",
			policyType, action, perspective, context)
	},
	func(policyType, action, perspective, context, _ string) string {
		return fmt.Sprintf("We enthusiastically endorse this %s initiative, which will %s and create unprecedented opportunities to %s across our industry ecosystem. The strategic vision underlying this proposal reflects deep understanding of sector dynamics and stakeholder needs, resulting in a balanced framework that promotes both compliance and innovation. The detailed implementation strategy, including provisions for %s, demonstrates thorough preparation and commitment to successful execution. We are particularly impressed by the inclusion of capacity building measures and technical assistance programs, which will ensure that all stakeholders can effectively participate in and benefit from these reforms. The phased rollout approach minimizes disruption while maximizing adoption rates, and the built-in review mechanisms ensure continuous optimization based on implementation feedback and changing market conditions.",
			policyType, action, perspective, context)
	},
	func(policyType, action, perspective, context, _ string) string {
		return fmt.Sprintf("This %s proposal constitutes a transformative step toward creating a world-class regulatory framework that will %s while fostering an environment where organizations can %s effectively. The initiative addresses critical gaps in the existing system through a comprehensive approach that balances regulatory oversight with business facilitation. We appreciate the government's recognition of the importance of %s in ensuring successful policy implementation and stakeholder buy-in. The proposed changes will significantly reduce compliance burdens while enhancing transparency and accountability across all levels of operation. The clear performance indicators and regular review cycles will enable data-driven refinements and ensure that the regulatory framework remains responsive to evolving business needs and international best practices. We are confident that this initiative will serve as a catalyst for broader economic growth and position our sector competitively in the global marketplace.",
			policyType, action, perspective, context)
	},
}

func postContent(post models.Post) string {
	return strings.TrimSpace(strings.ToLower(post.Title) + " " + strings.ToLower(post.DraftText))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ClassifyPolicy maps a post to its policy type by keyword
func ClassifyPolicy(post models.Post) PolicyType {
	content := postContent(post)
	for _, pt := range policyTypes {
		if containsAny(content, pt.keywords) {
			return pt
		}
	}
	return defaultPolicyType
}

// Perspective returns the stakeholder outlook phrase of a category
func Perspective(category models.Category) string {
	if p, ok := perspectives[category]; ok {
		return p
	}
	return defaultPerspective
}

// ContextPhrase summarizes up to two aspects of the post the comment
// should reference
func ContextPhrase(post models.Post) string {
	content := postContent(post)
	var found []string
	for _, cp := range contextPhrases {
		if containsAny(content, cp.keywords) {
			found = append(found, cp.phrase)
		}
	}
	if len(found) == 0 {
		return defaultContextPhrase
	}
	if len(found) > maxContextPhrases {
		found = found[:maxContextPhrases]
	}
	return strings.Join(found, ", ")
}

// Synthesize fills a random long-form template for the post and company.
// It never fails and never returns an empty string.
func Synthesize(post models.Post, company models.Company, rng random.Source) string {
	pt := ClassifyPolicy(post)
	tmpl := random.Choice(rng, templates)
	return tmpl(pt.Name, pt.Action, Perspective(company.Category), ContextPhrase(post), company.Category.String())
}
