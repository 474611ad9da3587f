package mailer

import "html/template"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Application Submitted!</h1>
    <p>Hello {{.Name}},</p>
    <p>Your application has been successfully submitted for the following position:</p>
    <div style="border-left: 4px solid #667eea; padding: 10px 20px;">
      <h3>{{.JobTitle}}</h3>
      <p><strong>Company:</strong> {{.Company}}</p>
    </div>
    <p>We have received your application and it is now under review. The employer
    will contact you directly if you are selected for the next stage.</p>
    <p>Thank you for using HireHub. Good luck with your application!</p>
    <p style="color: #666; font-size: 12px;">This is an automated message from HireHub. Please do not reply to this email.</p>
  </div>
</body>
</html>`))

var rejectionTmpl = template.Must(template.New("rejection").Parse(`
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Application Update</h1>
    <p>Hello {{.Name}},</p>
    <p>Thank you for your interest in the following position:</p>
    <div style="border-left: 4px solid #e74c3c; padding: 10px 20px;">
      <h3>{{.JobTitle}}</h3>
      <p><strong>Company:</strong> {{.Company}}</p>
    </div>
    <p>After careful consideration, the employer has decided to move forward with
    other candidates. This decision does not reflect on your qualifications, and
    we encourage you to keep applying to positions on HireHub.</p>
    <p style="color: #666; font-size: 12px;">This is an automated message from HireHub. Please do not reply to this email.</p>
  </div>
</body>
</html>`))

var shortlistTmpl = template.Must(template.New("shortlist").Parse(`
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>You've Been Shortlisted!</h1>
    <p>Hello {{.Name}},</p>
    <p>Great news! You have been shortlisted for the following position:</p>
    <div style="border-left: 4px solid #27ae60; padding: 10px 20px;">
      <h3>{{.JobTitle}}</h3>
      <p><strong>Company:</strong> {{.Company}}</p>
    </div>
    <p>The employer was impressed with your application and would like to move
    forward. Expect to be contacted about the next steps soon.</p>
    <p style="color: #666; font-size: 12px;">This is an automated message from HireHub. Please do not reply to this email.</p>
  </div>
</body>
</html>`))

var newApplicationTmpl = template.Must(template.New("new_application").Parse(`
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>New Application Received</h1>
    <p>Hello {{.Name}},</p>
    <p><strong>{{.Applicant}}</strong> has applied for your position:</p>
    <div style="border-left: 4px solid #667eea; padding: 10px 20px;">
      <h3>{{.JobTitle}}</h3>
    </div>
    <p>Log in to HireHub to review the application and manage your candidates.</p>
    <p style="color: #666; font-size: 12px;">This is an automated message from HireHub. Please do not reply to this email.</p>
  </div>
</body>
</html>`))
