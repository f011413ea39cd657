package session

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RolePayroll  = "payroll"
	RoleAdmin    = "admin"
)

// Resources guarded by the gate.
const (
	ResourceEmployeeDashboard = "dashboard.employee"
	ResourceHRDashboard       = "dashboard.hr"
	ResourcePayrollDashboard  = "dashboard.payroll"
	ResourceRequests          = "requests"
	ResourceEmployees         = "employees"
	ResourceRecruitment       = "recruitment"
	ResourcePayrollReports    = "payroll_reports"
	ResourceAttendance        = "attendance"
	ResourceNotifications     = "notifications"
)

const (
	ActionView    = "view"
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionExport  = "export"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var defaultPolicies = [][]string{
	{RoleEmployee, ResourceEmployeeDashboard, ActionView},
	{RoleEmployee, ResourceRequests, ActionRead},
	{RoleEmployee, ResourceRequests, ActionCreate},
	{RoleEmployee, ResourceAttendance, ActionRead},
	{RoleEmployee, ResourceAttendance, ActionCreate},
	{RoleEmployee, ResourceNotifications, ActionRead},
	{RoleEmployee, ResourceNotifications, ActionUpdate},

	{RoleHR, ResourceHRDashboard, ActionView},
	{RoleHR, ResourceRequests, ActionApprove},
	{RoleHR, ResourceEmployees, "*"},
	{RoleHR, ResourceRecruitment, "*"},

	{RolePayroll, ResourcePayrollDashboard, ActionView},
	{RolePayroll, ResourcePayrollReports, "*"},
	{RolePayroll, ResourceEmployees, ActionRead},
}

var defaultGroupings = [][]string{
	{RoleHR, RoleEmployee},
	{RolePayroll, RoleEmployee},
	{RoleAdmin, RoleHR},
	{RoleAdmin, RolePayroll},
}

// Policy is the capability set of every role.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds the built-in role policy. When policyPath is not empty
// the casbin CSV file at that path is used instead.
func NewPolicy(policyPath string) (*Policy, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	if policyPath != "" {
		e, err := casbin.NewEnforcer(m, policyPath)
		if err != nil {
			return nil, fmt.Errorf("load rbac policy %s: %w", policyPath, err)
		}
		return &Policy{enforcer: e}, nil
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(defaultGroupings); err != nil {
		return nil, err
	}
	return &Policy{enforcer: e}, nil
}

func (p *Policy) Allowed(role, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	return p.enforcer.Enforce(strings.ToLower(role), resource, action)
}
