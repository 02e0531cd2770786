package email

// Email templates in HTML format

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: #f5f1ea;
            color: #2d2a26;
        }
        .container {
            max-width: 600px;
            margin: 0 auto;
            padding: 40px 20px;
        }
        .card {
            background: #ffffff;
            border-radius: 12px;
            padding: 32px;
            border: 1px solid #e4ddd2;
        }
        .logo {
            text-align: center;
            margin-bottom: 24px;
        }
        .logo h1 {
            font-size: 28px;
            color: #2f5d43;
            margin: 0;
        }
        h2 {
            color: #2d2a26;
            font-size: 24px;
            margin: 0 0 16px;
        }
        p {
            color: #6c675f;
            font-size: 16px;
            line-height: 1.6;
            margin: 0 0 16px;
        }
        .btn {
            display: inline-block;
            background: #2f5d43;
            color: #ffffff !important;
            text-decoration: none;
            padding: 14px 28px;
            border-radius: 8px;
            font-weight: 600;
        }
        .code {
            font-size: 32px;
            letter-spacing: 8px;
            font-weight: 700;
            color: #2f5d43;
            text-align: center;
            margin: 24px 0;
        }
        .details {
            background: #f5f1ea;
            border-radius: 8px;
            padding: 20px;
            margin: 20px 0;
        }
        .details td {
            padding: 4px 12px 4px 0;
            font-size: 15px;
            color: #2d2a26;
        }
        .footer {
            text-align: center;
            margin-top: 24px;
            color: #a39d93;
            font-size: 13px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <div class="logo"><h1>Pine Haven Lodge</h1></div>
            {{.Content}}
        </div>
        <div class="footer">Pine Haven Lodge &middot; 12 Forest Road</div>
    </div>
</body>
</html>
`

// WelcomeTemplate greets a newly registered guest
const WelcomeTemplate = `
<h2>Welcome, {{.GuestName}}!</h2>
<p>Your account is ready. Browse our rooms and plan your next stay in the pines.</p>
<p><a class="btn" href="{{.RoomsURL}}">View rooms</a></p>
`

// VerificationTemplate carries the 6-digit email confirmation code
const VerificationTemplate = `
<h2>Confirm your email</h2>
<p>Hello {{.GuestName}}, use this code to confirm your email address. It expires in 15 minutes.</p>
<div class="code">{{.Code}}</div>
`

// PasswordResetTemplate carries the reset link
const PasswordResetTemplate = `
<h2>Reset your password</h2>
<p>Hello {{.GuestName}}, we received a request to reset your password. The link is valid for one hour.</p>
<p><a class="btn" href="{{.ResetURL}}">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>
`

// BookingConfirmedTemplate includes the stay summary and total
const BookingConfirmedTemplate = `
<h2>Booking confirmed</h2>
<p>Hello {{.GuestName}}, we look forward to hosting you.</p>
<div class="details">
    <table>
        <tr><td>Room</td><td><strong>{{.RoomName}}</strong></td></tr>
        <tr><td>Check-in</td><td>{{.CheckIn}}</td></tr>
        <tr><td>Check-out</td><td>{{.CheckOut}}</td></tr>
        <tr><td>Nights</td><td>{{.Nights}}</td></tr>
        <tr><td>Guests</td><td>{{.Guests}}</td></tr>
        <tr><td>Total</td><td><strong>${{.Total}}</strong></td></tr>
    </table>
</div>
<p>You can cancel free of charge until one day before check-in.</p>
`

// BookingCancelledTemplate confirms a cancellation
const BookingCancelledTemplate = `
<h2>Booking cancelled</h2>
<p>Hello {{.GuestName}}, your booking of <strong>{{.RoomName}}</strong> starting {{.CheckIn}} has been cancelled.</p>
<p>We hope to see you another time.</p>
`
