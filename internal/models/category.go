package models

// Category is a stakeholder category from the consultation portal
type Category string

// Known stakeholder categories
const (
	CategoryInsolvencyProfessional       Category = "Insolvency Professional"
	CategoryInsolvencyProfessionalAgency Category = "Insolvency Professional Agency"
	CategoryInsolvencyProfessionalEntity Category = "Insolvency Professional Entity"
	CategoryCorporateDebtor              Category = "Corporate Debtor"
	CategoryCreditor                     Category = "Creditor to a Corporate Debtor"
	CategoryPersonalGuarantor            Category = "Personal Guarantor to a Corporate Debtor"
	CategoryAcademics                    Category = "Academics"
	CategoryPartnershipFirms             Category = "Partnership firms"
	CategoryProprietorshipFirms          Category = "Proprietorship firms"
	CategoryInvestors                    Category = "Investors"
	CategoryUser                         Category = "User"
	CategoryOthers                       Category = "Others"
	CategoryGeneral                      Category = "General"
)

// String returns the category label
func (c Category) String() string {
	return string(c)
}
