package personalize

import "github.com/lokvaani/commentengine/internal/models"

var prefixes = map[models.Category][]string{
	models.CategoryInsolvencyProfessional: {"As insolvency professionals, we believe ", "From our professional experience, "},
	models.CategoryCorporateDebtor:        {"As a corporate entity, we find ", "From a business perspective, "},
	models.CategoryCreditor:               {"As creditors, we appreciate ", "From a financial standpoint, "},
	models.CategoryAcademics:              {"From an academic perspective, ", "Our research indicates "},
	models.CategoryPartnershipFirms:       {"As a partnership firm, we support ", "Our firm believes "},
	models.CategoryProprietorshipFirms:    {"As a small business, we welcome ", "From our business experience, "},
	models.CategoryInvestors:              {"As investors, we see ", "From an investment perspective, "},
	models.CategoryUser:                   {"We believe ", "In our opinion, "},
	models.CategoryOthers:                 {"We think ", "Our view is that "},
}

var genericFillers = []string{
	"This policy initiative demonstrates the government's commitment to regulatory modernization and stakeholder engagement.",
	"The comprehensive approach taken in this proposal reflects careful consideration of industry best practices and international standards.",
	"We appreciate the transparent consultation process that has been adopted for this important regulatory development.",
	"The implementation framework outlined in this document provides clear guidelines for compliance and enforcement mechanisms.",
	"This initiative aligns with our organization's strategic objectives and will enhance our operational effectiveness.",
	"The proposed changes will strengthen the regulatory ecosystem and improve business confidence in the sector.",
	"We believe this policy will contribute significantly to economic growth and sustainable development in our industry.",
	"The detailed provisions address key concerns raised by stakeholders during previous consultation rounds.",
	"This regulatory reform will facilitate better coordination between various government agencies and industry participants.",
	"The phased implementation approach will allow adequate time for organizations to adapt their processes and systems accordingly.",
}

var categoryFillers = map[models.Category]string{
	models.CategoryInsolvencyProfessional: "As insolvency professionals, we recognize the importance of maintaining high ethical standards and professional competence in our practice.",
	models.CategoryCorporateDebtor:        "From a corporate perspective, these changes will provide greater clarity on compliance requirements and operational procedures.",
	models.CategoryCreditor:               "The enhanced protection mechanisms for creditors will improve recovery rates and reduce financial risks.",
	models.CategoryAcademics:              "Our research indicates that such policy reforms typically lead to improved market efficiency and reduced regulatory uncertainty.",
	models.CategoryPartnershipFirms:       "These provisions will particularly benefit partnership structures by addressing specific legal and operational challenges we face.",
	models.CategoryProprietorshipFirms:    "As small business owners, we welcome initiatives that simplify regulatory processes while maintaining necessary safeguards.",
	models.CategoryInvestors:              "The improved transparency and predictability will create a more conducive environment for long-term investment decisions.",
}

// ClosingSentence is appended when no generic filler fits the deficit
const ClosingSentence = "We support this initiative and believe it will benefit all stakeholders in the regulatory framework."
