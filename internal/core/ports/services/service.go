package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers receive.
type ServiceContainer struct {
	Obligation  ObligationSvcFacade
	Settlement  SettlementSvcFacade
	CashFlow    CashFlowSvcFacade
	Category    CategorySvcFacade
	Account     FinancialAccountSvcFacade
	Card        CardSvcFacade
	Task        TaskSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Reporting   ReportingSvcFacade
}
