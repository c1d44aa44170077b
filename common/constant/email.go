package constant

const EmailPurchaseReceiptTemplate = `
Dear %s,

Thank you for your purchase!

Receipt:
------------------------------------------
Reference: %s
Product: %s
Quantity: %d
Total Amount: %s
------------------------------------------

Your change:
%s
Total change: %s

If you have any questions, please contact support@vending-machine.local.

Note: This is an automated message, please do not reply to this email.
`
